package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero.
func (p *PageRequest) DefaultPage(defLimit int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defLimit
	}
}

// Offset calcula el desplazamiento a partir de página y límite.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	Total       int `json:"total"`
}

// NewPageResponse construye los metadatos a partir del total de filas.
func NewPageResponse(page, limit, total int) PageResponse {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PageResponse{CurrentPage: page, TotalPages: pages, Total: total}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
