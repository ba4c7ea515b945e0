package mockapi

import "time"

const minConsumerProfit = -1000

type Client struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Address       string     `json:"address,omitempty"`
	Active        bool       `json:"active"`
	DeactivatedAt *time.Time `json:"deactivatedAt"`
}

type Order struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	SupplierID int       `json:"supplierId"`
	ConsumerID int       `json:"consumerId"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ClientProfit struct {
	ClientID int     `json:"clientId"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Active   bool    `json:"active"`
	Profit   float64 `json:"profit"`
}

type createClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type createOrderRequest struct {
	Title      string   `json:"title"`
	SupplierID *int     `json:"supplierId"`
	ConsumerID *int     `json:"consumerId"`
	Price      *float64 `json:"price"`
}

type clientStatusRequest struct {
	Active *bool `json:"active"`
}

type errorResponse struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}
