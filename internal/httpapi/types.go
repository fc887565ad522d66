package httpapi

// OpenResponse is returned by GET /api/market/open/{date}.
type OpenResponse struct {
	Date string `json:"date"`
	Open bool   `json:"open"`
}

// WeekendResponse is returned by GET /api/market/weekend/{date}.
type WeekendResponse struct {
	Date    string `json:"date"`
	Weekend bool   `json:"weekend"`
}

// NextOpenResponse is returned by GET /api/market/next-open/{date}.
type NextOpenResponse struct {
	Date     string `json:"date"`
	NextOpen string `json:"next_open"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status             string `json:"status"`
	Today              string `json:"today"`
	Open               bool   `json:"open"`
	GoodFridayLastYear int    `json:"good_friday_last_year"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
