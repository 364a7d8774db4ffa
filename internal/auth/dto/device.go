package dto

import "github.com/h-hub/secure-webapp/internal/auth/domain"

// DeviceInfo is captured at the transport boundary from the incoming request.
type DeviceInfo struct {
	UserAgent string
	IPAddress string
}

func (d DeviceInfo) Fingerprint() string {
	return domain.Fingerprint(d.UserAgent, d.IPAddress)
}
