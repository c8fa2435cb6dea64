package http

import "github.com/roomify-labs/roomify-backend/internal/projects/domain"

type saveRequest struct {
	Project    *domain.DesignItem `json:"project"`
	Visibility domain.Visibility  `json:"visibility"`
}

type saveResponse struct {
	Saved   bool               `json:"saved"`
	ID      string             `json:"id"`
	Project *domain.DesignItem `json:"project"`
}

type listResponse struct {
	Projects []domain.DesignItem `json:"projects"`
}

type getResponse struct {
	Project *domain.DesignItem `json:"project"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type bannerResponse struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
}
