package health

type Response struct {
	Status    string          `json:"status"`
	Service   string          `json:"service"`
	Version   string          `json:"version,omitempty"`
	Providers map[string]bool `json:"providers"`
}

type PingResponse struct {
	Message string `json:"message"`
}
