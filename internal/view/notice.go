package view

// Notice - код уведомления, передаваемый через параметр notice после редиректа.
type Notice string

const (
	NoticeAdded          Notice = "added"
	NoticeSelectSize     Notice = "select-size"
	NoticePaymentDetails Notice = "payment-details"
)

var noticeMessages = map[Notice]string{
	NoticeAdded:          "Product added to cart!",
	NoticeSelectSize:     "Please select a size.",
	NoticePaymentDetails: "Please fill in all payment details before paying.",
}

// Message возвращает текст уведомления; неизвестный код даёт пустую строку.
func (n Notice) Message() string {
	return noticeMessages[n]
}
