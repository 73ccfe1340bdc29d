package seed

type lessonData struct {
	course      int
	title       string
	description string
	videoURL    string
	steps       []string
}

type questionData struct {
	question string
	options  []string
	correct  int
}

type courseData struct {
	title, level, description, category string
}

var courses = []courseData{
	{"Beginner Sign Language", "Beginner", "Learn alphabet, numbers, and basic expressions.", "daily"},
	{"Daily Conversations", "Intermediate", "Signs for everyday communication and common phrases.", "daily"},
	{"Emergency & Safety", "Intermediate", "Critical signs for urgent situations and safety.", "emergency"},
	{"Workplace Communication", "Advanced", "Professional signs for work environments.", "workplace"},
	{"Medical & Healthcare", "Advanced", "Signs used in hospitals and clinics.", "medical"},
}

// lessons reference courses by index.
var lessons = []lessonData{
	{0, "Alphabet Basics (A-E)", "Learn how to sign the first 5 letters of the alphabet.", "https://example.com/alphabet-ae.mp4", []string{
		"Raise your hand in front of you",
		"Form the letter shape with your fingers",
		"Keep your hand steady",
		"Hold the position for 2 seconds",
		"Move on to the next letter",
	}},
	{0, "Numbers 1-10", "Learn to sign numbers from 1 to 10.", "https://example.com/numbers-1-10.mp4", []string{
		"Hold up your hand with fingers open",
		"Starting with 1 finger (thumb), count up",
		"Use a smooth flowing motion",
		"Numbers 6-10 use both hands",
		"Practice the transitions between numbers",
	}},
	{0, "Basic Greetings", "Learn common greetings in sign language.", "https://example.com/greetings.mp4", []string{
		"Start in a neutral position",
		"Make eye contact and smile",
		"Use appropriate facial expressions",
		`Wave hand naturally for "Hello"`,
		`Touch forehead and move down for "Thank you"`,
	}},
	{1, "Ordering Food", "Learn signs used when ordering at restaurants.", "https://example.com/ordering-food.mp4", []string{
		"Point to the menu item",
		`Use the sign for "want" or "like"`,
		"Specify quantity with numbers",
		"Add polite markers for courtesy",
		"Confirm the order with a nod",
	}},
	{2, "Emergency Phrases", "Learn critical signs for emergency situations.", "https://example.com/emergency.mp4", []string{
		`Sign "Help!" with both hands`,
		"Use rapid, sharp movements",
		"Clear facial expression of urgency",
		"Sign the type of emergency clearly",
		"Point to the location when necessary",
	}},
}

// quizzes are keyed by course index. correct is 0-based.
var quizzes = map[int][]questionData{
	0: {
		{`Which gesture represents the letter "A"?`, []string{"Make a fist with thumb extended", "Fingers spread and stiff", "Open hand with palm up"}, 0},
		{"How do you sign the number 3?", []string{"Three fingers extended (thumb, index, middle)", "Three fingers on each hand", "Index and middle fingers only"}, 0},
		{"What does this gesture represent?", []string{"Thank you", "Please", "Hello"}, 0},
		{"Which is correct for greeting?", []string{"Wave with open hand", "Make a fist", "Point your finger"}, 0},
		{"How many different hand shapes are in the alphabet?", []string{"More than 20", "Exactly 26", "Less than 15"}, 0},
	},
	1: {
		{`What is the sign for "want"?`, []string{"Both hands palms up, fingers curled", "Hand over heart", "Pointing at yourself"}, 0},
		{"How do you ask for the menu?", []string{`Point and make the "menu" sign`, "Say the word aloud", "Use facial expressions only"}, 0},
		{`What does "please" look like?`, []string{"Circle hand on chest", "Wave your hand", "Points fingers spread"}, 0},
		{"How do you specify quantity in a restaurant?", []string{"Use number signs", "Say it out loud", "Hold up fingers"}, 0},
	},
}
