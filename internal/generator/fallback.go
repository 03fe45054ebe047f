package generator

import (
	"fmt"

	"github.com/komresu/quizonomics/internal/quiz"
	"github.com/komresu/quizonomics/pkg/logger"
)

// SeedSource supplies extra pre-authored questions for a subject, e.g. from
// an imported question bank. Optional; a nil source means static seeds only.
type SeedSource interface {
	QuestionsBySubject(subject string, limit int) ([]quiz.Question, error)
}

// Bank synthesizes a full quiz from seed questions when generation fails.
// Seeds are cycled and relabeled with an ordinal prefix, so short banks
// repeat visibly; always having content wins over variety here.
type Bank struct {
	extra SeedSource
}

func NewBank(extra SeedSource) *Bank {
	return &Bank{extra: extra}
}

// Synthesize builds count questions for the subject. Fails with
// quiz.ErrNoContent when the subject has no seeds anywhere.
func (b *Bank) Synthesize(subject string, count int) ([]quiz.Question, error) {
	seeds := fallbackSeeds[subject]
	if b.extra != nil {
		imported, err := b.extra.QuestionsBySubject(subject, count)
		if err != nil {
			logger.Warn("Question bank lookup failed, using static seeds only",
				"subject", subject, "error", err)
		} else if len(imported) > 0 {
			seeds = imported
		}
	}
	if len(seeds) == 0 {
		return nil, quiz.ErrNoContent
	}

	questions := make([]quiz.Question, 0, count)
	for i := 0; i < count; i++ {
		q := seeds[i%len(seeds)]
		q.Text = fmt.Sprintf("%d. %s", i+1, q.Text)
		questions = append(questions, q)
	}
	return questions, nil
}

// Topics lists the prompt topics for a subject, used to bias generation
// toward variety.
func Topics(subject string) []string {
	return quizTopics[subject]
}

// SeedQuestions exposes the static banks for database seeding.
func SeedQuestions() map[string][]quiz.Question {
	return fallbackSeeds
}

// Subject topic lists for both exam tracks. Board and UPSC subject names do
// not collide, so one map serves both.
var quizTopics = map[string][]string{
	"Accountancy":           {"Accounting Principles", "Journal Entries", "Financial Statements", "Ratio Analysis", "Partnership Accounts", "Company Accounts"},
	"Business Studies":      {"Management Principles", "Marketing", "Finance", "Human Resources", "Business Environment", "Planning"},
	"Economics":             {"Microeconomics", "Macroeconomics", "Demand and Supply", "Market Structures", "National Income", "Government Budget"},
	"Mathematics":           {"Calculus", "Algebra", "Probability", "Statistics", "Matrices", "Linear Programming"},
	"English":               {"Grammar", "Vocabulary", "Comprehension", "Writing Skills", "Literature", "Poetry"},
	"Information Practices": {"Database Concepts", "SQL", "Python Programming", "Networking", "Web Development", "Data Visualization"},

	"History":         {"Ancient History", "Medieval History", "Modern History", "World History", "Art & Culture"},
	"Geography":       {"Physical Geography", "Human Geography", "Indian Geography", "World Geography", "Environmental Geography"},
	"Polity":          {"Indian Constitution", "Political System", "Governance", "Public Policy", "International Relations"},
	"Economy":         {"Indian Economy", "Economic Development", "Budget & Planning", "International Economics", "Agriculture & Industry"},
	"Science_Tech":    {"Science & Technology", "IT & Computers", "Space Technology", "Biotechnology", "Defence Technology"},
	"Environment":     {"Ecology", "Biodiversity", "Climate Change", "Environmental Policies", "Conservation"},
	"Current_Affairs": {"National Events", "International Events", "Government Schemes", "Awards & Honors", "Sports"},
}

var fallbackSeeds = map[string][]quiz.Question{
	"Accountancy": {
		{
			Text:         "What is the basic accounting equation?",
			Options:      []string{"Assets = Liabilities + Equity", "Assets = Liabilities - Equity", "Assets = Revenue - Expenses", "Assets = Income - Expenses"},
			CorrectIndex: 0,
			Explanation:  "The basic accounting equation is Assets = Liabilities + Equity, which forms the foundation of double-entry bookkeeping.",
		},
		{
			Text:         "Which financial statement shows a company's financial position at a specific point in time?",
			Options:      []string{"Balance Sheet", "Income Statement", "Cash Flow Statement", "Statement of Retained Earnings"},
			CorrectIndex: 0,
			Explanation:  "The Balance Sheet shows a company's assets, liabilities, and equity at a specific point in time.",
		},
	},
	"Business Studies": {
		{
			Text:         "What is the first step in the planning process?",
			Options:      []string{"Setting objectives", "Identifying alternatives", "Developing premises", "Evaluating alternatives"},
			CorrectIndex: 0,
			Explanation:  "Setting objectives is the first step in the planning process as it provides direction for all other steps.",
		},
	},
	"Economics": {
		{
			Text:         "What does GDP stand for?",
			Options:      []string{"Gross Domestic Product", "Gross Development Product", "General Domestic Product", "General Development Product"},
			CorrectIndex: 0,
			Explanation:  "GDP stands for Gross Domestic Product, which is the total value of all goods and services produced within a country in a given period.",
		},
	},
	"Mathematics": {
		{
			Text:         "What is the derivative of x²?",
			Options:      []string{"x", "2x", "2", "x²"},
			CorrectIndex: 1,
			Explanation:  "The derivative of x² is 2x, according to the power rule of differentiation.",
		},
	},
	"English": {
		{
			Text:         "Which of these is a preposition?",
			Options:      []string{"run", "beautiful", "under", "quickly"},
			CorrectIndex: 2,
			Explanation:  "A preposition shows the relationship between a noun or pronoun and other words in a sentence. 'Under' is a preposition.",
		},
	},
	"Information Practices": {
		{
			Text:         "What does SQL stand for?",
			Options:      []string{"Structured Query Language", "Simple Query Language", "System Query Language", "Standard Query Language"},
			CorrectIndex: 0,
			Explanation:  "SQL stands for Structured Query Language, used for managing and manipulating relational databases.",
		},
	},
	"History": {
		{
			Text:         "Who was the first Governor-General of independent India?",
			Options:      []string{"Lord Mountbatten", "C. Rajagopalachari", "Jawaharlal Nehru", "Rajendra Prasad"},
			CorrectIndex: 0,
			Explanation:  "Lord Mountbatten served as the first Governor-General of independent India from 1947 to 1948.",
		},
		{
			Text:         "The Indus Valley Civilization was discovered in which year?",
			Options:      []string{"1921", "1901", "1931", "1941"},
			CorrectIndex: 0,
			Explanation:  "The Indus Valley Civilization was discovered in 1921 by Dayaram Sahni at Harappa.",
		},
	},
	"Geography": {
		{
			Text:         "Which is the longest river in India?",
			Options:      []string{"Ganga", "Yamuna", "Brahmaputra", "Godavari"},
			CorrectIndex: 0,
			Explanation:  "The Ganga is the longest river in India with a length of 2,525 km.",
		},
	},
	"Polity": {
		{
			Text:         "How many fundamental rights are there in the Indian Constitution?",
			Options:      []string{"6", "7", "5", "8"},
			CorrectIndex: 0,
			Explanation:  "There are 6 fundamental rights in the Indian Constitution.",
		},
	},
	"Economy": {
		{
			Text:         "What is the currency of India?",
			Options:      []string{"Indian Rupee", "Taka", "Rupiah", "Yuan"},
			CorrectIndex: 0,
			Explanation:  "The Indian Rupee (INR) is the official currency of India.",
		},
	},
	"Science_Tech": {
		{
			Text:         "Which Indian mission was launched to Mars?",
			Options:      []string{"Mangalyaan", "Chandrayaan", "Aryabhata", "Bhaskara"},
			CorrectIndex: 0,
			Explanation:  "Mangalyaan (Mars Orbiter Mission) was India's first interplanetary mission.",
		},
	},
	"Environment": {
		{
			Text:         "Which is the first national park established in India?",
			Options:      []string{"Jim Corbett National Park", "Kaziranga National Park", "Gir National Park", "Sunderbans National Park"},
			CorrectIndex: 0,
			Explanation:  "Jim Corbett National Park was established in 1936 as Hailey National Park.",
		},
	},
	"Current_Affairs": {
		{
			Text:         "Who is the current President of India?",
			Options:      []string{"Droupadi Murmu", "Ram Nath Kovind", "Pratibha Patil", "A.P.J. Abdul Kalam"},
			CorrectIndex: 0,
			Explanation:  "Droupadi Murmu is the 15th and current President of India since 2022.",
		},
	},
}
