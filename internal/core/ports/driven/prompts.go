package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptMorningCheckIn frames the vision objective as a plan for the
	// day ahead. The template expects a %s placeholder for the objective.
	PromptMorningCheckIn = "morning_check_in"

	// PromptEveningCheckIn asks for an end-of-day reflection against the
	// vision objective. The template expects a %s placeholder.
	PromptEveningCheckIn = "evening_check_in"

	// PromptTweetIdeas drafts tweet ideas from today's journal entry.
	// The template expects a %s placeholder for the entry.
	PromptTweetIdeas = "tweet_ideas"

	// PromptEssayIdeas suggests essay topics drawn from today's journal
	// entry. The template expects a %s placeholder.
	PromptEssayIdeas = "essay_ideas"

	// PromptBookRecommendations recommends reading connected to the
	// journal entry's themes. The template expects a %s placeholder.
	PromptBookRecommendations = "book_recommendations"

	// PromptWeeklyPrayer composes a prayer from the week's weekly map.
	// The template expects a %s placeholder for the map content.
	PromptWeeklyPrayer = "weekly_prayer"
)
