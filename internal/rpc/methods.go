package rpc

const (
	LedgerService = "creatorhub.LedgerService"
	FeedService   = "creatorhub.FeedService"
)

// Method names, without the service prefix.
const (
	GetCredits        = "GetCredits"
	GetTransactions   = "GetTransactions"
	GetDashboardStats = "GetDashboardStats"
	ClaimDailyBonus   = "ClaimDailyBonus"
	CompleteProfile   = "CompleteProfile"
	AdjustUserCredits = "AdjustUserCredits"
	GetAllUsers       = "GetAllUsers"
	GetAdminStats     = "GetAdminStats"

	FetchFeed   = "FetchFeed"
	ToggleSave  = "ToggleSave"
	GetSaved    = "GetSaved"
	Report      = "Report"
	Share       = "Share"
	GetReported = "GetReported"
)

// FullMethod returns the "/service/method" form used on the wire.
func FullMethod(service, method string) string {
	return "/" + service + "/" + method
}

var adminMethods = map[string]bool{
	FullMethod(LedgerService, AdjustUserCredits): true,
	FullMethod(LedgerService, GetAllUsers):       true,
	FullMethod(LedgerService, GetAdminStats):     true,
	FullMethod(FeedService, GetReported):         true,
}

// IsAdminMethod reports whether fullMethod requires the admin role.
func IsAdminMethod(fullMethod string) bool {
	return adminMethods[fullMethod]
}
