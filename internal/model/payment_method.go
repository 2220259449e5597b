package model

import "fmt"

// PaymentMethod describes how money moved for an income or expense.
type PaymentMethod string

// Supported payment methods.
const (
	PaymentCash          PaymentMethod = "cash"
	PaymentTransfer      PaymentMethod = "transfer"
	PaymentCreditCard    PaymentMethod = "credit_card"
	PaymentDebitCard     PaymentMethod = "debit_card"
	PaymentCheck         PaymentMethod = "check"
	PaymentPayPal        PaymentMethod = "paypal"
	PaymentCrypto        PaymentMethod = "crypto"
	PaymentMobilePayment PaymentMethod = "mobile_payment"
)

// PaymentMethodValues returns all supported payment methods.
func PaymentMethodValues() []PaymentMethod {
	return []PaymentMethod{
		PaymentCash, PaymentTransfer, PaymentCreditCard, PaymentDebitCard,
		PaymentCheck, PaymentPayPal, PaymentCrypto, PaymentMobilePayment,
	}
}

// Valid reports whether m is one of the supported payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentCreditCard, PaymentDebitCard,
		PaymentCheck, PaymentPayPal, PaymentCrypto, PaymentMobilePayment:
		return true
	}
	return false
}

// ParsePaymentMethod converts untrusted input into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("unsupported payment method %q", s)
	}
	return m, nil
}

// UnmarshalJSON rejects payment methods outside the supported set.
func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return fmt.Errorf("payment method: %w", err)
	}
	parsed, err := ParsePaymentMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
