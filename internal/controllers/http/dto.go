package http

type OrderItemRequest struct {
	ProductID uint64  `json:"productId"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Image     string  `json:"image"`
}

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zipCode" binding:"required"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Customer      CustomerRequest    `json:"customer" binding:"required"`
	PaymentMethod string             `json:"paymentMethod"`
	Notes         string             `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateLeadRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AddCartItemRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// filterFields keeps only whitelisted json keys from a partial-update
// body, remapped to their column names.
func filterFields(body map[string]any, allowed map[string]string) map[string]any {
	out := make(map[string]any, len(body))
	for key, v := range body {
		if column, ok := allowed[key]; ok {
			out[column] = v
		}
	}
	return out
}

var productFields = map[string]string{
	"name":             "name",
	"slug":             "slug",
	"shortDescription": "short_description",
	"description":      "description",
	"specifications":   "specifications",
	"price":            "price",
	"comparePrice":     "compare_price",
	"images":           "images",
	"tags":             "tags",
	"category":         "category",
	"stock":            "stock",
	"sku":              "sku",
	"isActive":         "is_active",
	"isFeatured":       "is_featured",
	"isTopRated":       "is_top_rated",
	"isTopSale":        "is_top_sale",
	"metaTitle":        "meta_title",
	"metaDescription":  "meta_description",
	"metaKeywords":     "meta_keywords",
}

var categoryFields = map[string]string{
	"name":        "name",
	"slug":        "slug",
	"description": "description",
	"image":       "image",
	"icon":        "icon",
	"isActive":    "is_active",
}

var bannerFields = map[string]string{
	"title":       "title",
	"description": "description",
	"image":       "image",
	"buttonText":  "button_text",
	"buttonLink":  "button_link",
	"order":       "position",
	"isActive":    "is_active",
}

var blogFields = map[string]string{
	"title":            "title",
	"slug":             "slug",
	"author":           "author",
	"shortDescription": "short_description",
	"content":          "content",
	"image":            "image",
	"tags":             "tags",
	"category":         "category",
	"metaTitle":        "meta_title",
	"metaDescription":  "meta_description",
	"isActive":         "is_active",
}

var galleryFields = map[string]string{
	"title":    "title",
	"image":    "image",
	"caption":  "caption",
	"isActive": "is_active",
}
