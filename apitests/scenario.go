package apitests

import (
	"strconv"
	"strings"

	"github.com/clientorders/api-contract-tests/client"
	"github.com/clientorders/api-contract-tests/servicedef"
)

const (
	SupplierEntity = "supplier"
	ConsumerEntity = "consumer"

	DefaultSupplierID = 1
	DefaultConsumerID = 2
)

// IDs are the client ids that a step's path and body are built from.
type IDs struct {
	Supplier int
	Consumer int
}

// Step is one request of the scenario.
type Step struct {
	Title  string
	Method string
	// Path is relative to the API base URL. The placeholders {supplier} and {consumer} are
	// replaced with the corresponding client ids.
	Path string
	// Body returns the JSON payload of the request, or is nil for requests without a body.
	Body func(IDs) interface{}
	// Capture, if set, is the entity name under which the response is kept for later steps.
	Capture string
}

func (s Step) ExpandPath(ids IDs) string {
	return strings.NewReplacer(
		"{supplier}", strconv.Itoa(ids.Supplier),
		"{consumer}", strconv.Itoa(ids.Consumer),
	).Replace(s.Path)
}

// ResolveIDs reads the ids of the captured supplier and consumer, falling back to the default
// ids for any that are missing.
func ResolveIDs(entities *client.Entities) IDs {
	return IDs{
		Supplier: entities.IDOrElse(SupplierEntity, DefaultSupplierID),
		Consumer: entities.IDOrElse(ConsumerEntity, DefaultConsumerID),
	}
}

func staticBody(body interface{}) func(IDs) interface{} {
	return func(IDs) interface{} { return body }
}

func orderBody(title string, price int) func(IDs) interface{} {
	return func(ids IDs) interface{} {
		return servicedef.CreateOrderParams{
			Title:      title,
			SupplierID: ids.Supplier,
			ConsumerID: ids.Consumer,
			Price:      price,
		}
	}
}

// Steps returns the scenario in execution order.
func Steps() []Step {
	return []Step{
		{
			Title:  "Create Supplier",
			Method: "POST",
			Path:   servicedef.ClientsPath,
			Body: staticBody(servicedef.CreateClientParams{
				Name: "Supplier A", Email: "suppA@test.io", Address: "Kyiv",
			}),
			Capture: SupplierEntity,
		},
		{
			Title:  "Create Consumer",
			Method: "POST",
			Path:   servicedef.ClientsPath,
			Body: staticBody(servicedef.CreateClientParams{
				Name: "Consumer B", Email: "consB@test.io", Address: "Lviv",
			}),
			Capture: ConsumerEntity,
		},
		{
			Title:  "Create Order",
			Method: "POST",
			Path:   servicedef.OrdersPath,
			Body:   orderBody("order-1", 100),
		},
		{
			// Same payload as the previous step; the API should reject the duplicate.
			Title:  "Duplicate Order",
			Method: "POST",
			Path:   servicedef.OrdersPath,
			Body:   orderBody("order-1", 100),
		},
		{
			Title:  "Profit Supplier",
			Method: "GET",
			Path:   servicedef.ClientsPath + "/{supplier}/profit",
		},
		{
			Title:  "Profit Consumer",
			Method: "GET",
			Path:   servicedef.ClientsPath + "/{consumer}/profit",
		},
		{
			Title:  "Order with bad price",
			Method: "POST",
			Path:   servicedef.OrdersPath,
			Body:   orderBody("bad-price", 0),
		},
		{
			Title:  "Deactivate Consumer",
			Method: "PATCH",
			Path:   servicedef.ClientsPath + "/{consumer}/status",
			Body:   staticBody(servicedef.ClientStatusParams{Active: false}),
		},
		{
			Title:  "Order after deactivation",
			Method: "POST",
			Path:   servicedef.OrdersPath,
			Body:   orderBody("after-deactivate", 50),
		},
	}
}
