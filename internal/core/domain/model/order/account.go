package order

import (
	"strings"

	"freight/internal/core/domain/model/kernel"
)

// Account is the customer account that owns an order, reduced to what the
// order rules need.
type Account struct {
	id         kernel.UUID
	memberCode string
}

// NewAccount returns an error when id is not a constructed UUID. memberCode may
// be empty: accounts without a member code can still place orders, they only
// get a warning on evaluation. Surrounding blanks are trimmed.
//
// Example:
//
//	account, err := order.NewAccount(accountID, "  M-1024 ")
//	account.MemberCode()    // "M-1024"
//	account.HasMemberCode() // true
func NewAccount(id kernel.UUID, memberCode string) (Account, error) {
	if err := id.Validate(); err != nil {
		return Account{}, err
	}
	return Account{id: id, memberCode: strings.TrimSpace(memberCode)}, nil
}

func (a Account) ID() kernel.UUID {
	return a.id
}

func (a Account) MemberCode() string {
	return a.memberCode
}

// HasMemberCode reports whether a non-blank member code is recorded.
func (a Account) HasMemberCode() bool {
	return a.memberCode != ""
}

// Validate fails for the zero Account.
func (a Account) Validate() error {
	return a.id.Validate()
}
