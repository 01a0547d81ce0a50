package advisor

import (
	"fmt"
	"strings"
)

// CourseSummary is the slice of catalog data the prompts mention.
type CourseSummary struct {
	Title    string
	Category string
}

func classificationPrompt(query string) string {
	return fmt.Sprintf(`
Analyze the following user query and determine if it is:
1. A request for a learning path/roadmap/steps/guidance on how to learn something (LEARNING_PATH)
2. A general question or doubt seeking an informational answer (GENERAL_QUESTION)

Query: "%s"

IMPORTANT GUIDELINES:
- If the query contains words like "what is", "explain", "define", "describe", classify as GENERAL_QUESTION
- If the query ends with a question mark and asks for information rather than steps, classify as GENERAL_QUESTION
- If the query is asking "how to learn" or "steps to become" something, classify as LEARNING_PATH
- When in doubt, prefer GENERAL_QUESTION classification

Respond with ONLY ONE of these exact labels: "LEARNING_PATH" or "GENERAL_QUESTION".
`, query)
}

// courseContext describes the catalog: its distinct categories and up to three titles.
func courseContext(courses []CourseSummary) string {
	var b strings.Builder
	b.WriteString("Our platform offers courses in categories such as: ")

	seen := map[string]struct{}{}
	var categories []string
	for _, c := range courses {
		if c.Category == "" {
			continue
		}
		if _, ok := seen[c.Category]; ok {
			continue
		}
		seen[c.Category] = struct{}{}
		categories = append(categories, c.Category)
	}
	b.WriteString(strings.Join(categories, ", "))
	b.WriteString(". ")

	var titles []string
	for i := 0; i < len(courses) && i < 3; i++ {
		titles = append(titles, courses[i].Title)
	}
	if len(titles) > 0 {
		fmt.Fprintf(&b, "Example course titles include: %s. ", strings.Join(titles, ", "))
	}
	b.WriteString("When suggesting a learning step that aligns with a course type we offer, please mention the general area or skill.")
	return b.String()
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "None specified."
	}
	return strings.Join(values, ", ")
}

func learningPathPrompt(req Request) string {
	return fmt.Sprintf(`
You are an expert learning path advisor. A user is seeking guidance to achieve a learning objective.
Their primary query is: "%s"
Their name is: %s
Their stated interests are: %s
Their stated goals are: %s

Context about our learning platform: %s
Our courses have difficulty levels: Beginner, Intermediate, Advanced.

Please generate a step-by-step learning path to help the user achieve their objective.
The path should consist of 3 to 7 actionable steps.
For each step, provide:
1. A concise "title" for the step.
2. A brief "description" (1-2 sentences) explaining the step's purpose or what to learn.
3. A "type" field, which should be one of: "foundational_skill", "practical_application", "course_focus_area", or "further_exploration".

VERY IMPORTANT: Respond ONLY with a valid JSON array of objects. Each object in the array represents a step and must have the keys "step" (a sequential number starting from 1), "title", "description", and "type".
Do not include any introductory text, concluding remarks, markdown formatting (like `+"```json"+`), or any other text outside of the JSON array itself.

Example of a single step object:
{ "step": 1, "title": "Understand Core Programming Concepts", "description": "Begin by learning fundamental programming principles like variables, control flow, data structures, and algorithms. This is crucial before specializing.", "type": "foundational_skill" }
`, req.Query, req.displayName(), listOrNone(req.Interests), listOrNone(req.Goals), courseContext(req.Courses))
}

func generalQuestionPrompt(req Request) string {
	return fmt.Sprintf(`
You are an expert educational advisor and tutor for a learning platform.

A user named %s has asked: "%s"

Their stated interests are: %s
Their stated goals are: %s

Context about our learning platform: %s

Please provide a professional, helpful, and educational response to their question. Your response should:
1. Be concise yet comprehensive (200-300 words)
2. Include relevant educational concepts and terminology when appropriate
3. Provide practical advice they can apply
4. Suggest resources or approaches that might help them further
5. Be encouraging and supportive

Format your response with proper paragraphs. You may use markdown for text formatting like **bold** or *italic* if needed.

IMPORTANT INSTRUCTIONS:
- DO NOT format your response as a step-by-step learning path.
- DO NOT use numbered steps or bullet points unless absolutely necessary to explain a concept.
- DO NOT start with phrases like "Here is a learning path" or "Steps to learn".
- DO use natural paragraphs and conversational tone.
- Answer the specific question asked rather than providing a general guide.

IMPORTANT: Respond with plain text directly. Do not use JSON formatting or add any prefix labels.
`, req.displayName(), req.Query, listOrNone(req.Interests), listOrNone(req.Goals), courseContext(req.Courses))
}
