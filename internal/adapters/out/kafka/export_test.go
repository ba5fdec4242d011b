package kafka

import "time"

func (p *BillingEventPublisher) SetNow(now func() time.Time) {
	p.now = now
}
