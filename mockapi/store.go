package mockapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func badRequest(format string, args ...interface{}) error {
	return &apiError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) error {
	return &apiError{status: http.StatusNotFound, message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &apiError{status: http.StatusConflict, message: fmt.Sprintf(format, args...)}
}

type store struct {
	clients    map[int]*Client
	orders     []*Order
	lastClient int
	lastOrder  int
	now        func() time.Time
	lock       sync.Mutex
}

func newStore() *store {
	return &store{clients: make(map[int]*Client), now: time.Now}
}

func (s *store) createClient(req createClientRequest) (Client, error) {
	name, email := strings.TrimSpace(req.Name), strings.TrimSpace(req.Email)
	if name == "" {
		return Client{}, badRequest("Client name must not be blank")
	}
	if email == "" {
		return Client{}, badRequest("Client email must not be blank")
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	for _, c := range s.clients {
		if strings.EqualFold(c.Email, email) {
			return Client{}, conflict("Email already exists: %s", req.Email)
		}
	}
	s.lastClient++
	c := &Client{
		ID:      s.lastClient,
		Name:    name,
		Email:   email,
		Address: strings.TrimSpace(req.Address),
		Active:  true,
	}
	s.clients[c.ID] = c
	return *c, nil
}

func (s *store) getClient(id int) (Client, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return Client{}, notFound("Client not found: id=%d", id)
	}
	return *c, nil
}

func (s *store) listClients() []Client {
	s.lock.Lock()
	defer s.lock.Unlock()
	ret := make([]Client, 0, len(s.clients))
	for _, c := range s.clients {
		ret = append(ret, *c)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}

func (s *store) setActive(id int, active bool) (Client, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return Client{}, notFound("Client not found: id=%d", id)
	}
	if active {
		c.Active = true
		c.DeactivatedAt = nil
	} else if c.Active {
		now := s.now()
		c.Active = false
		c.DeactivatedAt = &now
	}
	return *c, nil
}

func (s *store) profit(id int) (ClientProfit, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return ClientProfit{}, notFound("Client not found: id=%d", id)
	}
	return ClientProfit{
		ClientID: c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Active:   c.Active,
		Profit:   s.computeProfit(c.ID),
	}, nil
}

// computeProfit is the total price of orders where the client is the supplier, minus the
// total where it is the consumer. The caller must hold the lock.
func (s *store) computeProfit(clientID int) float64 {
	var profit float64
	for _, o := range s.orders {
		if o.SupplierID == clientID {
			profit += o.Price
		}
		if o.ConsumerID == clientID {
			profit -= o.Price
		}
	}
	return profit
}

func validateOrder(req createOrderRequest) error {
	var problems []string
	title := strings.TrimSpace(req.Title)
	if title == "" {
		problems = append(problems, "title must not be blank")
	} else if n := len([]rune(title)); n < 3 || n > 200 {
		problems = append(problems, "title size must be between 3 and 200")
	}
	if req.SupplierID == nil {
		problems = append(problems, "supplierId must not be null")
	}
	if req.ConsumerID == nil {
		problems = append(problems, "consumerId must not be null")
	}
	if req.Price == nil {
		problems = append(problems, "price must not be null")
	} else if *req.Price <= 0 {
		problems = append(problems, "price must be greater than 0")
	}
	if len(problems) > 0 {
		return badRequest("%s", strings.Join(problems, "; "))
	}
	return nil
}

func (s *store) createOrder(req createOrderRequest) (Order, error) {
	if err := validateOrder(req); err != nil {
		return Order{}, err
	}
	supplierID, consumerID, price := *req.SupplierID, *req.ConsumerID, *req.Price
	if supplierID == consumerID {
		return Order{}, badRequest("Supplier and consumer must be different")
	}
	if price < 1 {
		return Order{}, badRequest("Price must be positive and >= 1")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	supplier, ok := s.clients[supplierID]
	if !ok {
		return Order{}, notFound("Supplier not found: id=%d", supplierID)
	}
	consumer, ok := s.clients[consumerID]
	if !ok {
		return Order{}, notFound("Consumer not found: id=%d", consumerID)
	}
	if !supplier.Active {
		return Order{}, badRequest("Supplier is inactive: id=%d", supplier.ID)
	}
	if !consumer.Active {
		return Order{}, badRequest("Consumer is inactive: id=%d", consumer.ID)
	}
	if s.computeProfit(consumer.ID)-price < minConsumerProfit {
		return Order{}, badRequest("Consumer profit would drop below %d", minConsumerProfit)
	}
	title := strings.TrimSpace(req.Title)
	for _, o := range s.orders {
		if strings.EqualFold(o.Title, title) && o.SupplierID == supplier.ID && o.ConsumerID == consumer.ID {
			return Order{}, conflict("Order with the same title/supplier/consumer already exists")
		}
	}

	s.lastOrder++
	o := &Order{
		ID:         s.lastOrder,
		Title:      title,
		SupplierID: supplier.ID,
		ConsumerID: consumer.ID,
		Price:      price,
		CreatedAt:  s.now(),
	}
	s.orders = append(s.orders, o)
	return *o, nil
}

func (s *store) getOrder(id int) (Order, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return *o, nil
		}
	}
	return Order{}, notFound("Order not found: id=%d", id)
}

// listOrders returns all orders, or only those involving clientID if it is non-zero.
func (s *store) listOrders(clientID int) []Order {
	s.lock.Lock()
	defer s.lock.Unlock()
	ret := make([]Order, 0, len(s.orders))
	for _, o := range s.orders {
		if clientID == 0 || o.SupplierID == clientID || o.ConsumerID == clientID {
			ret = append(ret, *o)
		}
	}
	return ret
}
