package rates

import "time"

func (p *Provider) SetNow(now func() time.Time) {
	p.now = now
}
