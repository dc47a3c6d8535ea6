package entity

type PaymentMethod string

const (
	PayCard   PaymentMethod = "card"
	PayUPI    PaymentMethod = "upi"
	PayWallet PaymentMethod = "wallet"
)

func (m PaymentMethod) Valid() bool {
	return m == PayCard || m == PayUPI || m == PayWallet
}
