package domain

// AllCategories is the closed vocabulary for exercise and plan categories.
var AllCategories = []string{
	"Balance",
	"Endurance",
	"Flexibility",
	"Mini Dancers",
	"On Demand Workout",
	"Partners",
	"Power",
	"Strength",
	"Warm Up",
}

// AllTags is the closed vocabulary for exercise tags.
var AllTags = []string{
	"Abs",
	"Ankles",
	"Arms",
	"Back",
	"Chest",
	"Extension",
	"Full Body",
	"Glutes",
	"Hamstrings",
	"Hips",
	"Jumps and Leaps",
	"Kicks",
	"Lower Body",
	"Quadriceps",
	"Shoulders",
	"Turn Out",
	"Turns",
	"Upper Body",
}

// NewCategorySelection returns an empty editor over AllCategories.
func NewCategorySelection() *Selection {
	return NewSelection(AllCategories...)
}

// NewTagSelection returns an empty editor over AllTags.
func NewTagSelection() *Selection {
	return NewSelection(AllTags...)
}
