package prompt

import "github.com/johnquangdev/meeting-insights/internal/domain/entities"

// SentinelNone is the exact line the model is told to emit when a list task finds nothing
const SentinelNone = "None identified"

// NotCoveredAnswer is the fixed reply for questions the transcript cannot answer
const NotCoveredAnswer = "The provided transcript does not contain information about that."

// Default generation caps per task, in tokens
var defaultMaxTokens = map[entities.ExtractionTask]int{
	entities.TaskSummary:     350,
	entities.TaskDecisions:   250,
	entities.TaskActionItems: 300,
	entities.TaskSentiment:   100,
	entities.TaskAnswer:      200,
}

// instructions maps each task to the text placed before the transcript.
// Templates are versioned with the binary; changing one changes every envelope built from it.
var instructions = map[entities.ExtractionTask]string{
	entities.TaskSummary:     summaryInstruction,
	entities.TaskDecisions:   decisionsInstruction,
	entities.TaskActionItems: actionItemsInstruction,
	entities.TaskSentiment:   sentimentInstruction,
	entities.TaskAnswer:      answerInstruction,
}

const summaryInstruction = `You are an expert meeting summarizer.
Given the following meeting transcript, write a concise summary of the main topics discussed and the key outcomes.

Output rules:
- Plain prose, one or two short paragraphs.
- No headings, no bullet points, no introductory phrase such as "Here is the summary:".
- Output the summary and nothing else.`

const decisionsInstruction = `You are an expert meeting analyst.
From the following meeting transcript, list every key decision that was made.

Output rules:
- One decision per line, formatted as a markdown bullet starting with "- ".
- State each decision as a short imperative phrase, e.g. "- Launch the feature next Monday".
- Do not include action items, opinions, or open questions.
- If no decisions were made, output exactly the line: ` + SentinelNone + `
- Output the list or the line above and nothing else.`

const actionItemsInstruction = `You are an expert meeting analyst.
From the following meeting transcript, extract every action item.

Output rules:
- One action item per line, formatted as a markdown bullet starting with "- ".
- When a person or team is responsible, end the line with "(Owner: <name>)", e.g. "- Prepare the rollout plan by Friday (Owner: Bob)".
- When nobody is named as responsible, omit the owner marker entirely.
- If there are no action items, output exactly the line: ` + SentinelNone + `
- Output the list or the line above and nothing else.`

const sentimentInstruction = `Analyze the overall sentiment of the following meeting transcript.

Output rules:
- First line: "Sentiment: " followed by exactly one word: Positive, Negative, or Neutral.
- Second line: "Justification: " followed by one or two sentences explaining the rating.
- Output these two lines and nothing else.`

const answerInstruction = `You are an assistant that answers questions using ONLY the meeting transcript below.
1. If the question can be answered from the transcript, give a concise answer based solely on the transcript.
2. If the transcript does not discuss the topic of the question, reply exactly: ` + NotCoveredAnswer + `
Do not use outside knowledge. Do not repeat the question. Output the answer and nothing else.`
