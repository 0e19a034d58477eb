package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// PickupQRCode renders the PNG shown at the pickup desk to match a customer
// with their order.
func (s *SiteService) PickupQRCode(id string) ([]byte, error) {
	order, err := s.Order(id)
	if err != nil {
		return nil, err
	}
	payload := fmt.Sprintf("joshemfoods:order:%s:pickup:%s", order.ID, order.PickupTime)
	return qrcode.Encode(payload, qrcode.Medium, 256)
}
