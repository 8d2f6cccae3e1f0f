package cache

import "strings"

// Cache keys shared by the services that read and invalidate them
const (
	KeyAdminStats     = "agromap:admin:stats"
	KeyMarketProvince = "agromap:markets:provinces"
)

// LoginFailuresKey counts recent failed logins for a username
func LoginFailuresKey(username string) string {
	return "agromap:login_failures:" + strings.ToLower(username)
}
