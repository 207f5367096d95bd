package catalog

import "weekendly/internal/model"

var builtin = []model.Activity{
	{ID: "brunch", Name: "Brunch", Category: model.CategoryFood, Duration: 2, Mood: model.MoodSocial, Icon: "🥞", Description: "Late breakfast with friends at a favourite cafe."},
	{ID: "hiking", Name: "Hiking", Category: model.CategoryOutdoor, Duration: 3, Mood: model.MoodAdventurous, Icon: "🥾", Description: "Trail walk with a view at the top."},
	{ID: "movie-night", Name: "Movie Night", Category: model.CategoryIndoor, Duration: 3, Mood: model.MoodRelaxing, Icon: "🎬", Description: "Blankets, popcorn and a film marathon."},
	{ID: "yoga", Name: "Yoga", Category: model.CategoryFitness, Duration: 1, Mood: model.MoodRelaxing, Icon: "🧘", Description: "A slow flow session to stretch out the week."},
	{ID: "museum", Name: "Museum Visit", Category: model.CategoryCulture, Duration: 2, Mood: model.MoodCreative, Icon: "🏛️", Description: "Explore a new exhibition downtown."},
	{ID: "board-games", Name: "Board Games", Category: model.CategorySocial, Duration: 2, Mood: model.MoodSocial, Icon: "🎲", Description: "Strategy games and snacks with friends."},
	{ID: "reading", Name: "Reading", Category: model.CategoryRelaxation, Duration: 1, Mood: model.MoodRelaxing, Icon: "📚", Description: "Quiet time with a good book."},
	{ID: "cycling", Name: "Cycling", Category: model.CategoryFitness, Duration: 2, Mood: model.MoodEnergetic, Icon: "🚴", Description: "Ride along the river path."},
	{ID: "picnic", Name: "Picnic", Category: model.CategoryOutdoor, Duration: 2, Mood: model.MoodRelaxing, Icon: "🧺", Description: "Lunch on the grass in the park."},
	{ID: "cooking-class", Name: "Cooking Class", Category: model.CategoryFood, Duration: 2, Mood: model.MoodCreative, Icon: "👩‍🍳", Description: "Learn a new recipe from a local chef."},
	{ID: "concert", Name: "Live Concert", Category: model.CategoryCulture, Duration: 3, Mood: model.MoodEnergetic, Icon: "🎸", Description: "Catch a live band in town."},
	{ID: "spa", Name: "Spa Afternoon", Category: model.CategoryRelaxation, Duration: 2, Mood: model.MoodRelaxing, Icon: "💆", Description: "Sauna, massage and a long nap."},
	{ID: "painting", Name: "Painting", Category: model.CategoryIndoor, Duration: 2, Mood: model.MoodCreative, Icon: "🎨", Description: "Watercolours at the kitchen table."},
	{ID: "climbing", Name: "Rock Climbing", Category: model.CategoryFitness, Duration: 2, Mood: model.MoodAdventurous, Icon: "🧗", Description: "Bouldering session at the climbing gym."},
	{ID: "farmers-market", Name: "Farmers Market", Category: model.CategoryFood, Duration: 1, Mood: model.MoodSocial, Icon: "🥕", Description: "Fresh produce and street food."},
	{ID: "karaoke", Name: "Karaoke", Category: model.CategorySocial, Duration: 2, Mood: model.MoodEnergetic, Icon: "🎤", Description: "Sing your heart out with the crew."},
	{ID: "kayaking", Name: "Kayaking", Category: model.CategoryOutdoor, Duration: 3, Mood: model.MoodAdventurous, Icon: "🛶", Description: "Paddle around the lake."},
	{ID: "photo-walk", Name: "Photo Walk", Category: model.CategoryCulture, Duration: 2, Mood: model.MoodCreative, Icon: "📷", Description: "Wander the old town with a camera."},
}
