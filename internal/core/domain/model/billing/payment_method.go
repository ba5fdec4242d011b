package billing

import (
	"fmt"
	"slices"
	"strings"

	"freight/internal/pkg/errs"
)

// PaymentMethod identifies how a customer settles a billing.
type PaymentMethod string

const (
	KRBankTransfer PaymentMethod = "KR_BANK_TRANSFER"
	KRCreditCard   PaymentMethod = "KR_CREDIT_CARD"
	KRKakaoPay     PaymentMethod = "KR_PG_KAKAOPAY"
	KRNaverPay     PaymentMethod = "KR_PG_NAVERPAY"

	THPromptPay    PaymentMethod = "TH_QR_PROMPTPAY"
	THBankTransfer PaymentMethod = "TH_BANK_TRANSFER"
	THCreditCard   PaymentMethod = "TH_CREDIT_CARD"
	THTrueMoney    PaymentMethod = "TH_TRUE_MONEY"

	PayPal       PaymentMethod = "PAYPAL"
	BankTransfer PaymentMethod = "BANK_TRANSFER"
)

var (
	koreanMethods        = []PaymentMethod{KRBankTransfer, KRCreditCard, KRKakaoPay, KRNaverPay}
	thaiMethods          = []PaymentMethod{THPromptPay, THBankTransfer, THCreditCard, THTrueMoney}
	internationalMethods = []PaymentMethod{PayPal, BankTransfer}
)

// AvailablePaymentMethods picks the method set for the country named in a
// free-form recipient address. Addresses naming neither Korea nor Thailand
// get the international set.
func AvailablePaymentMethods(address string) []PaymentMethod {
	lower := strings.ToLower(address)
	switch {
	case strings.Contains(lower, "korea"):
		return slices.Clone(koreanMethods)
	case strings.Contains(lower, "thailand"):
		return slices.Clone(thaiMethods)
	default:
		return slices.Clone(internationalMethods)
	}
}

func (m PaymentMethod) Validate() error {
	all := slices.Concat(koreanMethods, thaiMethods, internationalMethods)
	if !slices.Contains(all, m) {
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid", fmt.Errorf("%q is not supported", string(m)))
	}
	return nil
}

func (m PaymentMethod) String() string {
	return string(m)
}
