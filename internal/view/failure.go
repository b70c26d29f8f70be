package view

// Page - страница, зависящая от каталога.
type Page string

const (
	PageHome    Page = "home"
	PageListing Page = "listing"
	PageDetail  Page = "detail"
)

type FailureView struct {
	Page   Page
	Banner string
	// Regions - области страницы, на месте которых выводится сообщение об ошибке загрузки.
	Regions map[string]string
}

// RenderFailure заменяет каждую область страницы, зависящую от каталога, сообщением об ошибке.
func RenderFailure(page Page) FailureView {
	var regions []string
	switch page {
	case PageHome:
		regions = []string{"home"}
	case PageListing:
		regions = []string{"women", "men"}
	default:
		regions = []string{"detail"}
	}

	v := FailureView{
		Page:    page,
		Banner:  MsgGenericFailure,
		Regions: make(map[string]string, len(regions)),
	}
	for _, region := range regions {
		v.Regions[region] = MsgFetchFailed
	}

	return v
}
