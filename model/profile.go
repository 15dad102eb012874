package model

// MenuItem is a single dish on a restaurant's menu.
type MenuItem struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image,omitempty" validate:"omitempty,url"`
	Popular     bool   `json:"popular,omitempty"`
}

// Review is a user review shown on the detail page.
type Review struct {
	ID      int      `json:"id" validate:"required"`
	User    string   `json:"user" validate:"required"`
	Avatar  string   `json:"avatar,omitempty" validate:"omitempty,url"`
	Rating  float64  `json:"rating" validate:"gte=0,lte=5"`
	Date    string   `json:"date" validate:"datetime=2006-01-02"`
	Content string   `json:"content"`
	Photos  []string `json:"photos,omitempty" validate:"dive,url"`
}

// RestaurantProfile holds the detail-page data that list and map views do not need.
type RestaurantProfile struct {
	RestaurantID int        `json:"restaurant_id" validate:"required,gt=0"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	Hours        []string   `json:"hours"`
	Description  string     `json:"description"`
	Menu         []MenuItem `json:"menu" validate:"dive"`
	Photos       []string   `json:"photos" validate:"dive,url"`
	Reviews      []Review   `json:"review_list" validate:"dive"`
}

// RestaurantDetail combines a restaurant with its optional profile.
type RestaurantDetail struct {
	Restaurant
	Profile *RestaurantProfile `json:"profile,omitempty"`
}

// FeaturedRestaurant is a home-page highlight card.
type FeaturedRestaurant struct {
	ID          int       `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Category    Category  `json:"type" validate:"category"`
	Rating      float64   `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount int       `json:"reviews"`
	Image       string    `json:"image" validate:"omitempty,url"`
	Location    string    `json:"location"`
	Price       PriceTier `json:"price" validate:"gte=1,lte=4"`
}

// PersonalizedPick is a curated "취향 저격" recommendation card on the home page.
type PersonalizedPick struct {
	ID           int      `json:"id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	MatchScore   int      `json:"match_score" validate:"gte=0,lte=100"`
	Category     Category `json:"type" validate:"category"`
	Highlight    string   `json:"highlight"`
	Rating       float64  `json:"rating" validate:"gte=0,lte=5"`
	Image        string   `json:"image" validate:"omitempty,url"`
	Location     string   `json:"location"`
	BestMatch    string   `json:"best_match"`
	Ambiance     string   `json:"ambiance"`
	Focus        string   `json:"focus"`
	Practical    []string `json:"practical"`
	PriceComment string   `json:"price_comment"`
}

// HomeContent is everything the landing page renders besides the pickers.
type HomeContent struct {
	Featured       []FeaturedRestaurant `json:"featured" validate:"dive"`
	FoodCategories []CategoryCount      `json:"food_categories" validate:"dive"`
	Personalized   []PersonalizedPick   `json:"personalized" validate:"dive"`
}
