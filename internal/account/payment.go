package account

import (
	"context"
	"fmt"
	"time"
)

// SubscriptionPrice is the one-time access fee shown on the payment screen.
const SubscriptionPrice = "K 10.00"

// Operator is a mobile-money network.
type Operator string

const (
	OperatorAirtel Operator = "airtel"
	OperatorMTN    Operator = "mtn"
	OperatorZamtel Operator = "zamtel"
)

func Operators() []Operator {
	return []Operator{OperatorAirtel, OperatorMTN, OperatorZamtel}
}

func (o Operator) Valid() bool {
	switch o {
	case OperatorAirtel, OperatorMTN, OperatorZamtel:
		return true
	}
	return false
}

func (o Operator) Label() string {
	switch o {
	case OperatorAirtel:
		return "Airtel Money"
	case OperatorMTN:
		return "MTN MoMo"
	case OperatorZamtel:
		return "Zamtel Kwacha"
	}
	return string(o)
}

// PaymentState is a step of the simulated mobile-money flow.
type PaymentState string

const (
	PaymentIdle          PaymentState = "idle"
	PaymentProcessing    PaymentState = "processing"
	PaymentWaitingForPIN PaymentState = "waiting_for_pin"
	PaymentSuccess       PaymentState = "success"
)

// NextPayment returns the state after s and how long s lasts. ok is false
// once the flow has finished.
func (d Delays) NextPayment(s PaymentState) (next PaymentState, after time.Duration, ok bool) {
	switch s {
	case PaymentIdle:
		return PaymentProcessing, 0, true
	case PaymentProcessing:
		return PaymentWaitingForPIN, d.PaymentProcessing, true
	case PaymentWaitingForPIN:
		return PaymentSuccess, d.PaymentPIN, true
	}
	return s, 0, false
}

// Pay runs the simulated payment for u through op, reporting each state
// to progress, and marks u paid on success. Cancelling ctx abandons the
// payment with u unchanged.
func (s *Sessions) Pay(ctx context.Context, u User, op Operator, payPhone string, progress func(PaymentState)) (User, error) {
	if !op.Valid() {
		return u, &ValidationError{Field: "operator", Message: "Please choose a mobile money provider."}
	}
	if err := ValidatePhone(payPhone); err != nil {
		return u, err
	}

	state := PaymentIdle
	for {
		next, after, ok := s.delays.NextPayment(state)
		if !ok {
			break
		}
		if err := wait(ctx, s.clock, after); err != nil {
			s.log.Info("payment abandoned", "phone", u.PhoneNumber, "state", string(state))
			return u, err
		}
		state = next
		if progress != nil {
			progress(state)
		}
	}
	s.log.Info("payment approved", "phone", u.PhoneNumber, "operator", string(op))
	return s.CompletePayment(ctx, u)
}

// CompletePayment records a successful payment for u.
func (s *Sessions) CompletePayment(ctx context.Context, u User) (User, error) {
	now := s.clock.Now()
	u.HasPaid = true
	u.SubscriptionDate = &now
	if err := s.Save(ctx, u); err != nil {
		return u, fmt.Errorf("record payment: %w", err)
	}
	return u, nil
}
