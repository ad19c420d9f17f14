package screen

// DefaultScreens are the screens provisioned by cmd/seed
var DefaultScreens = []ScreenRequest{
	{
		Name:     "Library Entrance Screen",
		Location: "Main Library, Ground Floor Entrance",
		Specs:    `55" LED, 4K Resolution, High Brightness`,
		ImageURL: "https://placehold.co/600x400.png",
		AIHint:   "library entrance",
	},
	{
		Name:     "Cafeteria Main Display",
		Location: "Student Cafeteria, West Wall",
		Specs:    `70" LCD, Full HD, Wide Viewing Angle`,
		ImageURL: "https://placehold.co/600x400.png",
		AIHint:   "cafeteria display",
	},
	{
		Name:     "Student Lounge Interactive",
		Location: "Student Lounge, Near Coffee Bar",
		Specs:    `65" OLED, 4K Touchscreen, Interactive Kiosk`,
		ImageURL: "https://placehold.co/600x400.png",
		AIHint:   "lounge interactive",
	},
	{
		Name:     "Tech Hub Screen Alpha",
		Location: "Tech Building, 1st Floor Hallway",
		Specs:    `42" LCD, Portrait Mode, Info Display`,
		ImageURL: "https://placehold.co/400x600.png",
		AIHint:   "tech hub",
	},
}
