package types

type ErrorResponse struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}
