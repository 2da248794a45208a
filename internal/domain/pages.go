package domain

type PageKey string

const (
	PageAbout    PageKey = "about"
	PageDelivery PageKey = "delivery"
	PagePayment  PageKey = "payment"
	PageServices PageKey = "services"
	PageWarranty PageKey = "warranty"
)

var PageKeys = []PageKey{
	PageAbout,
	PageDelivery,
	PagePayment,
	PageServices,
	PageWarranty,
}

func IsPageKey(s string) bool {
	for _, k := range PageKeys {
		if string(k) == s {
			return true
		}
	}
	return false
}
