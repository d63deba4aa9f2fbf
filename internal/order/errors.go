package order

import "fmt"

type ErrorKind int

const (
	KindCustomerNotFound ErrorKind = iota + 1
	KindProductNotFound
	KindInsufficientStock
	KindInvalidRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindCustomerNotFound:
		return "customer_not_found"
	case KindProductNotFound:
		return "product_not_found"
	case KindInsufficientStock:
		return "insufficient_stock"
	case KindInvalidRequest:
		return "invalid_request"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// PlacementError is a business-rule rejection of a placement request. Nothing
// has been written when one is returned.
type PlacementError struct {
	Kind       ErrorKind
	CustomerID string
	ProductID  string
	// Available is the stock seen when the request was validated.
	Available int
	Reason    string
}

func (e *PlacementError) Error() string {
	switch e.Kind {
	case KindCustomerNotFound:
		return "customer not found"
	case KindProductNotFound:
		return fmt.Sprintf("could not find product with id %s", e.ProductID)
	case KindInsufficientStock:
		return fmt.Sprintf("there are only %d units of %s available", e.Available, e.ProductID)
	case KindInvalidRequest:
		return "invalid order request: " + e.Reason
	}
	return e.Kind.String()
}

// Is matches any PlacementError of the same kind, so the sentinels below
// work with errors.Is.
func (e *PlacementError) Is(target error) bool {
	t, ok := target.(*PlacementError)
	return ok && t.Kind == e.Kind
}

var (
	ErrCustomerNotFound  error = &PlacementError{Kind: KindCustomerNotFound}
	ErrProductNotFound   error = &PlacementError{Kind: KindProductNotFound}
	ErrInsufficientStock error = &PlacementError{Kind: KindInsufficientStock}
	ErrInvalidRequest    error = &PlacementError{Kind: KindInvalidRequest}
)

func customerNotFound(id string) error {
	return &PlacementError{Kind: KindCustomerNotFound, CustomerID: id}
}

func productNotFound(id string) error {
	return &PlacementError{Kind: KindProductNotFound, ProductID: id}
}

func insufficientStock(id string, available int) error {
	return &PlacementError{Kind: KindInsufficientStock, ProductID: id, Available: available}
}

func invalidRequest(format string, args ...any) error {
	return &PlacementError{Kind: KindInvalidRequest, Reason: fmt.Sprintf(format, args...)}
}
