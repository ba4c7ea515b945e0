package servicedef

const (
	ClientsPath = "/clients"
	OrdersPath  = "/orders"
)

type CreateClientParams struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type CreateOrderParams struct {
	Title      string `json:"title"`
	SupplierID int    `json:"supplierId"`
	ConsumerID int    `json:"consumerId"`
	Price      int    `json:"price"`
}

type ClientStatusParams struct {
	Active bool `json:"active"`
}
