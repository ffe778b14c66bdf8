package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/cart"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/order"
)

type Step string

const (
	StepShipping  Step = "Shipping"
	StepPayment   Step = "Payment"
	StepReview    Step = "Review"
	StepCompleted Step = "Completed"
)

func (s Step) String() string {
	return string(s)
}

var (
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrInvalidTransition = errors.New("illegal checkout step transition")
)

// ValidationError reports the required form fields that were left empty.
// The flow does not advance while any are missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

const (
	PaymentMethodCard = "card"
	PaymentMethodUPI  = "upi"
)

// PaymentForm carries the raw payment input. Only a display string ever
// leaves the flow; card and UPI details are discarded with it.
type PaymentForm struct {
	Method         string `json:"method"`
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholder_name"`
	UPIID          string `json:"upi_id"`
}

// Display renders the payment method as the string stored on the order.
func (f PaymentForm) Display() string {
	if f.Method == PaymentMethodCard {
		digits := f.CardNumber
		if len(digits) > 4 {
			digits = digits[len(digits)-4:]
		}
		return fmt.Sprintf("Credit Card ending in %s", digits)
	}
	return "UPI Payment"
}

// Flow is the Shipping -> Payment -> Review -> Completed state machine.
// It is transient: navigating away discards it, nothing is persisted
// until PlaceOrder succeeds.
type Flow struct {
	mu       sync.Mutex
	step     Step
	shipping domain.Address
	payment  PaymentForm
	orderID  int64

	cart    *cart.Service
	orders  *order.Service
	pricing Pricing
}

// Begin starts a checkout. An empty cart cannot enter the flow.
func Begin(ctx context.Context, cartSvc *cart.Service, orders *order.Service, pricing Pricing) (*Flow, error) {
	count, err := cartSvc.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmptyCart
	}

	return &Flow{
		step:    StepShipping,
		cart:    cartSvc,
		orders:  orders,
		pricing: pricing,
	}, nil
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// OrderID returns the id of the placed order, zero before completion.
func (f *Flow) OrderID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderID
}

// SubmitShipping validates the address and advances to the payment step.
// On validation failure the flow stays at Shipping.
func (f *Flow) SubmitShipping(addr domain.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepShipping {
		return ErrInvalidTransition
	}

	required := map[string]string{
		"fullName":     addr.FullName,
		"addressLine1": addr.AddressLine1,
		"city":         addr.City,
		"state":        addr.State,
		"zipCode":      addr.ZipCode,
		"phone":        addr.Phone,
	}
	if err := validateRequired(required, []string{"fullName", "addressLine1", "city", "state", "zipCode", "phone"}); err != nil {
		return err
	}

	f.shipping = addr
	f.step = StepPayment
	return nil
}

// SubmitPayment validates the method-specific fields and advances to the
// review step. On validation failure the flow stays at Payment.
func (f *Flow) SubmitPayment(form PaymentForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPayment {
		return ErrInvalidTransition
	}

	switch form.Method {
	case PaymentMethodCard:
		required := map[string]string{
			"cardNumber":     form.CardNumber,
			"expiryDate":     form.ExpiryDate,
			"cvv":            form.CVV,
			"cardholderName": form.CardholderName,
		}
		if err := validateRequired(required, []string{"cardNumber", "expiryDate", "cvv", "cardholderName"}); err != nil {
			return err
		}
	case PaymentMethodUPI:
		if err := validateRequired(map[string]string{"upiId": form.UPIID}, []string{"upiId"}); err != nil {
			return err
		}
	default:
		return &ValidationError{Fields: []string{"method"}}
	}

	f.payment = form
	f.step = StepReview
	return nil
}

// Back steps the flow backwards for edit-and-return: Payment -> Shipping
// or Review -> Payment.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepPayment:
		f.step = StepShipping
	case StepReview:
		f.step = StepPayment
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Summary prices the current cart contents.
func (f *Flow) Summary(ctx context.Context) (Summary, error) {
	subtotal, err := f.cart.Total(ctx)
	if err != nil {
		return Summary{}, err
	}
	return f.pricing.Quote(subtotal), nil
}

// PlaceOrder snapshots the cart into an order draft, creates the order
// and then clears the cart. On creation failure the flow stays at Review
// with the cart untouched, so the caller can retry; the cart is only
// cleared after the order is confirmed created.
func (f *Flow) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepReview {
		return nil, ErrInvalidTransition
	}

	enriched, err := f.cart.Enriched(ctx)
	if err != nil {
		return nil, err
	}
	if len(enriched) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(enriched))
	var subtotal float64
	for _, line := range enriched {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Image:     line.Product.Image(),
		})
		subtotal += line.Subtotal()
	}
	quote := f.pricing.Quote(subtotal)

	placed, err := f.orders.Create(ctx, order.Draft{
		Items:           items,
		Total:           quote.Total,
		ShippingAddress: f.shipping,
		PaymentMethod:   f.payment.Display(),
	})
	if err != nil {
		return nil, err
	}

	if err := f.cart.Clear(ctx); err != nil {
		// The order exists; a stale cart is recoverable, losing the
		// order is not.
		log.Printf("failed to clear cart after placing order %d: %v", placed.ID, err)
	}

	f.step = StepCompleted
	f.orderID = placed.ID
	return placed, nil
}

func validateRequired(values map[string]string, orderOf []string) error {
	var missing []string
	for _, field := range orderOf {
		if strings.TrimSpace(values[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
