// Command roomify is the headless client: it runs the upload, save and
// render flow against either the direct key-value path or the deployed
// worker, matching the page flows of the web app.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/roomify-labs/roomify-backend/config"
	"github.com/roomify-labs/roomify-backend/internal/app"
	"github.com/roomify-labs/roomify-backend/internal/bootstrap"
	"github.com/roomify-labs/roomify-backend/internal/hosting"
	"github.com/roomify-labs/roomify-backend/internal/projects/repository"
	"github.com/roomify-labs/roomify-backend/internal/projects/store"
	"github.com/roomify-labs/roomify-backend/internal/render"
	"github.com/roomify-labs/roomify-backend/internal/transport"
	"github.com/roomify-labs/roomify-backend/internal/upload"
	"github.com/roomify-labs/roomify-backend/internal/visualizer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: roomify <upload|list|get> [args]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	svc, cleanup, err := buildService(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to build service: %v", err)
	}
	defer cleanup()
	defer svc.Close()

	switch os.Args[1] {
	case "upload":
		if len(os.Args) < 3 {
			log.Fatal("usage: roomify upload <image>")
		}
		runUpload(ctx, svc, os.Args[2])
	case "list":
		runList(ctx, svc)
	case "get":
		if len(os.Args) < 3 {
			log.Fatal("usage: roomify get <id>")
		}
		runGet(ctx, svc, os.Args[2])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

func buildService(ctx context.Context, cfg *config.Config) (*app.Service, func(), error) {
	detector := &transport.Detector{
		Origin:       func() string { return cfg.App.Origin },
		HostedSuffix: cfg.App.HostedSuffix,
	}

	hostingClient := hosting.NewClient(cfg.Hosting.BaseURL)
	resolver := hosting.NewResolver(hostingClient, cfg.Hosting.SiteName, cfg.Hosting.Domain)
	routed := transport.NewClient(detector, cfg.Worker.BaseURL, cfg.Worker.ProxyBase, cfg.Worker.ProxyPrefix, nil)

	opts := store.Options{
		Detector:   detector,
		Resolver:   resolver,
		Client:     routed,
		WorkerBase: cfg.Worker.BaseURL,
	}

	cleanup := func() {}
	if !detector.IsHosted() {
		kv, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		opts.Repo = repository.NewProjectRepository(kv)
		cleanup = func() { _ = kv.Close() }
	}

	var renderer visualizer.Renderer
	if !cfg.Render.Disabled {
		gen, err := render.NewGeminiGenerator(ctx, cfg.Render.Model)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("genai: %w", err)
		}
		renderer = render.NewInvoker(gen, cfg.Render.Timeout, cfg.Render.MaxDim)
	}

	return app.NewService(store.New(opts), renderer), cleanup, nil
}

func runUpload(ctx context.Context, svc *app.Service, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}

	meta := upload.FileMeta{
		Name:     filepath.Base(path),
		MIMEType: mimeFromExt(path),
		Size:     int64(len(data)),
	}

	var inline string
	err = svc.Uploader().Process(ctx, meta, data,
		func(p int) { fmt.Printf("\rAnalysing floor plan... %d%%", p) },
		func(payload string) { inline = payload },
	)
	if err != nil {
		log.Fatalf("\nupload rejected: %v", err)
	}
	fmt.Println()

	item := svc.CreateFromUpload(ctx, inline)
	log.Printf("created project %s (%s)", item.ID, item.Name)

	ctrl := svc.OpenVisualizer(ctx, item.ID)
	if ctrl == nil {
		log.Fatalf("project %s not found after save", item.ID)
	}

	if !ctrl.StartRender(ctx) {
		log.Printf("render already present or in flight; nothing to do")
		return
	}

	log.Printf("rendering (this can take up to two minutes)...")
	start := time.Now()
	ctrl.Wait()

	if err := ctrl.Err(); err != nil {
		log.Fatalf("render failed after %s: %v", time.Since(start).Round(time.Second), err)
	}

	snap := ctrl.Snapshot()
	log.Printf("render complete in %s (%d bytes inline)", time.Since(start).Round(time.Second), len(snap.RenderedImage))
}

func runList(ctx context.Context, svc *app.Service) {
	items := svc.ListProjects(ctx)
	if len(items) == 0 {
		fmt.Println("no projects")
		return
	}
	for _, item := range items {
		rendered := " "
		if item.RenderedImage != "" {
			rendered = "*"
		}
		fmt.Printf("%s %-16s %s\n", rendered, item.ID, item.Name)
	}
}

func runGet(ctx context.Context, svc *app.Service, id string) {
	ctrl := svc.OpenVisualizer(ctx, id)
	if ctrl == nil {
		log.Fatalf("project %s not found", id)
	}
	item := ctrl.Snapshot()
	fmt.Printf("id:        %s\nname:      %s\nsource:    %s\nrendered:  %v\nupdatedAt: %s\n",
		item.ID, item.Name, truncate(item.SourceImage, 80), item.RenderedImage != "", item.UpdatedAt)
}

func mimeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
