package main

const (
	defaultFarewell = "Goodbye! Feel free to ask me anything anytime. Have a productive day!"
	defaultGreeting = "Hello! I'm ProSyncX Assistant. How can I help you today?"
)

// defaultGroupNames labels the built-in groups for diagnostics.
// Index i names triggerGroups[i] and replyGroups[i].
var defaultGroupNames = []string{
	"greeting",
	"farewell",
	"wellbeing",
	"thanks",
	"about",
	"tasks_list",
	"task_create",
	"reminder",
	"note",
	"status",
	"help",
	"problem_statement",
	"test_cases",
	"issues",
	"architecture",
	"affirmative",
	"negative",
	"laughter",
}

var defaultTriggerGroups = [][]string{
	{"hi", "hey", "hello", "good morning", "good afternoon"},
	{"bye", "good bye", "goodbye", "see you later", "exit"},
	{"how are you", "how is life", "how are things"},
	{"thank you", "thanks", "ty"},
	{"what is prosyncx", "explain prosyncx", "prosyncx", "definition", "what is it"},
	{"what are my tasks", "show my tasks", "what to do", "tasks"},
	{"new task", "create story", "log a task", "create"},
	{"set reminder", "need alert", "schedule meeting", "reminder"},
	{"save note", "make a note", "daily note", "note"},
	{"team status", "sprint progress", "check progress", "status", "sprint"},
	{"help", "what can you do", "commands"},
	{"problem statement", "problem", "main problem"},
	{"test cases", "testcases", "tests needed"},
	{"issues", "blockers", "what are issues"},
	{"architecture", "tech stack", "backend"},
	{"yes", "ok", "okay", "nice"},
	{"no", "not sure", "maybe"},
	{"haha", "ha", "lol", "hehe"},
}

var defaultReplyGroups = [][]string{
	{"Hello! Ready to work?", "Hi there!", "Hey, what's the plan?"},
	{"Bye! Remember to log your time.", "See you! Happy sprinting.", "Goodbye, tasks await!", "Exiting now!"},
	{
		"I'm fine, focused on project data. How about you?",
		"Pretty well, ready to help your team.",
		"Running smoothly, what can I help you manage?",
	},
	{"You're welcome! Let me know if you need to tackle any tasks.", "Glad to help!", "No problem at all."},
	{
		"**ProSyncX** is a comprehensive platform for project collaboration with workspace management, real-time messaging, video meetings, and academic integration.",
	},
	{
		"I can list your pending tasks. Please tell me which project you need the list for.",
		"You have active tasks! To show them, tell me the project name.",
		"Checking your assignments now... which project?",
	},
	{
		"Got it. What's the name of the new task? I'll need a title and priority.",
		"New task initiated. Please provide the title and team member responsible.",
		"User story creation started. What feature does this task belong to?",
	},
	{
		"Reminder set! Please specify the time and a brief description.",
		"Scheduling an alert now. What is the event and when should it go off?",
		"Please provide the date, time, and topic for the reminder.",
	},
	{
		"Note saved! What's the topic you'd like to record?",
		"Note logged. You can retrieve it later by asking 'show notes'.",
		"Daily note recorded. What's the content?",
	},
	{
		"Checking the board... The team is 70% through the current sprint.",
		"Sprint progress looks good. Anything blocking the team?",
		"Current status is On Track. Do you need details on specific progress?",
	},
	{
		"I manage tasks, set reminders, and provide project status.",
		"I can help with project status, notes, assigning roles, and Agile questions.",
	},
	{
		"ProSyncX solves bridging classroom learning with real-world Agile practices.",
		"The problem is connecting theoretical knowledge with practical software development.",
	},
	{
		"Focus on Authentication, Task Creation, Real-Time Chat, and Reminder accuracy.",
		"Which module do you need test cases for?",
	},
	{
		"The most common issues are permission management and real-time synchronization.",
		"I see 2 open blockers. Would you like me to list them?",
	},
	{
		"Microservices with React/Vue frontend and WebSockets for real-time features.",
		"The core uses a three-tier design: Presentation, API, and Database.",
	},
	{"Got it!", "Understood.", "Perfect. Proceeding now."},
	{"Understood. What should we focus on instead?", "No problem.", "I'll wait for your next command."},
	{"Haha, good one! Back to the project!", "That's hilarious. Don't forget to relax!"},
}

var defaultFallbacks = []string{
	"I need a clear command like 'tasks', 'reminder', or 'status'.",
	"Please ask me about a task, project status, or diary entry.",
	"Try a simple command related to your sprint or notes.",
	"I don't understand that command. Try again.",
}

// DefaultPatternTable builds the built-in assistant table
func DefaultPatternTable() *PatternTable {
	pt, err := newPatternTableFromGroups(defaultTriggerGroups, defaultReplyGroups, defaultFallbacks, defaultFarewell, defaultGreeting)
	if err != nil {
		// The literals above are fixed; a failure here is a programming error.
		panic(err)
	}
	copy(pt.names, defaultGroupNames)
	return pt
}
