package domain

// Image описывает изображение товара, которое отдаёт каталог
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

func NewImage(url string, alt string) Image {
	return Image{
		URL: url,
		Alt: alt,
	}
}
