package handlers

// AppHandlers bundles every endpoint handler for route registration.
type AppHandlers struct {
	Auth     *AuthHandler
	Profile  *ProfileHandler
	Offer    *OfferHandler
	Order    *OrderHandler
	Review   *ReviewHandler
	BaseInfo *BaseInfoHandler
	File     *FileHandler
}
