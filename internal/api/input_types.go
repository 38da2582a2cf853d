package api

type registerInput struct {
	Email         string  `json:"email" form:"email" query:"email"`
	Password      string  `json:"password" form:"password" query:"password"`
	Height        float64 `json:"height" form:"height" query:"height"`
	Weight        float64 `json:"weight" form:"weight" query:"weight"`
	Age           int     `json:"age" form:"age" query:"age"`
	Gender        string  `json:"gender" form:"gender" query:"gender"`
	Username      string  `json:"username" form:"username" query:"username"`
	ActivityLevel *int    `json:"activity_level" form:"activity_level" query:"activity_level"`
}

type loginInput struct {
	Email    string `json:"email" form:"email" query:"email"`
	Password string `json:"password" form:"password" query:"password"`
}

// updateUserInput leaves omitted fields nil so stored values are kept.
type updateUserInput struct {
	Email         *string  `json:"email" form:"email" query:"email"`
	Password      *string  `json:"password" form:"password" query:"password"`
	Height        *float64 `json:"height" form:"height" query:"height"`
	Weight        *float64 `json:"weight" form:"weight" query:"weight"`
	Age           *int     `json:"age" form:"age" query:"age"`
	Gender        *string  `json:"gender" form:"gender" query:"gender"`
	Username      *string  `json:"username" form:"username" query:"username"`
	ActivityLevel *int     `json:"activity_level" form:"activity_level" query:"activity_level"`
}

// foodInput creates a catalog food. With user_id present it logs the
// consumption too, reusing an identical food when one exists.
type foodInput struct {
	Name       string   `json:"name" form:"name" query:"name"`
	Calories   float64  `json:"calories" form:"calories" query:"calories"`
	Protein    float64  `json:"protein" form:"protein" query:"protein"`
	Fat        float64  `json:"fat" form:"fat" query:"fat"`
	Carbs      float64  `json:"carbs" form:"carbs" query:"carbs"`
	UserID     *uint    `json:"user_id" form:"user_id" query:"user_id"`
	Grams      *float64 `json:"grams" form:"grams" query:"grams"`
	ConsumedAt string   `json:"consumed_at" form:"consumed_at" query:"consumed_at"`
}

type userFoodInput struct {
	UserID     uint    `json:"user_id" form:"user_id" query:"user_id"`
	FoodID     uint    `json:"food_id" form:"food_id" query:"food_id"`
	Grams      float64 `json:"grams" form:"grams" query:"grams"`
	ConsumedAt string  `json:"consumed_at" form:"consumed_at" query:"consumed_at"`
}
