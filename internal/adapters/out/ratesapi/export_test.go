package ratesapi

import "time"

func (c *Client) SetNow(now func() time.Time) {
	c.now = now
}
