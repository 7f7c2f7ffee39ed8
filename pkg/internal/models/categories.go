package models

const (
	CategoryAnimals       = "Animals"
	CategoryChildren      = "Children"
	CategoryEducation     = "Education"
	CategoryEntertainment = "Entertainment"
	CategoryFood          = "Food"
	CategoryGaming        = "Gaming"
	CategoryLifeStyle     = "LifeStyle"
	CategoryMen           = "Men"
	CategoryMovies        = "Movies"
	CategoryMusic         = "Music"
	CategoryNews          = "News"
	CategoryOther         = "Other"
	CategoryProgramming   = "Programming"
	CategoryScience       = "Science"
	CategorySports        = "Sports"
	CategoryTechnology    = "Technology"
	CategoryTravel        = "Travel"
	CategoryVehicles      = "Vehicles"
	CategoryWomen         = "Women"
)

var Categories = []string{
	CategoryAnimals, CategoryChildren, CategoryEducation, CategoryEntertainment,
	CategoryFood, CategoryGaming, CategoryLifeStyle, CategoryMen, CategoryMovies,
	CategoryMusic, CategoryNews, CategoryOther, CategoryProgramming, CategoryScience,
	CategorySports, CategoryTechnology, CategoryTravel, CategoryVehicles, CategoryWomen,
}
