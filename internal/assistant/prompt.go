package assistant

import (
	"fmt"
	"strings"
)

// quoteBank holds curated, verified quotes with their sources, served for
// the "quote" command. Exact wording only; the prompt forbids paraphrase.
var quoteBank = [][2]string{
	{"The way to figure out what to work on is by working. If you're not sure what to work on, guess. But pick something and get going.", "How to Do Great Work"},
	{"Develop a habit of working on your own projects. Don't let 'work' mean something other people tell you to do.", "How to Do Great Work"},
	{"People who do great things don't get a lot done every day. They get something done, rather than nothing.", "How to Do Great Work"},
	{"Work doesn't just happen when you're trying to. There's a kind of undirected thinking you do when walking or taking a shower or lying in bed that can be very powerful.", "How to Do Great Work"},
	{"Try to finish what you start, though, even if it turns out to be more work than you expected. Finishing things is not just an exercise in tidiness or self-discipline.", "How to Do Great Work"},
	{"Curiosity is the best guide. Your curiosity never lies, and it knows more than you do about what's worth paying attention to.", "How to Do Great Work"},
	{"The discoveries are out there, waiting to be made. Why not by you?", "How to Do Great Work"},
	{"The more labels you have for yourself, the dumber they make you.", "Keep Your Identity Small"},
	{"Actually startups take off because the founders make them take off.", "Do Things That Don't Scale"},
	{"It's not enough just to do something extraordinary initially. You have to make an extraordinary effort initially.", "Do Things That Don't Scale"},
	{"When you're operating on the maker's schedule, meetings are a disaster. A single meeting can blow a whole afternoon, by breaking it into two pieces each too small to do anything hard in.", "Maker's Schedule, Manager's Schedule"},
	{"For someone on the maker's schedule, having a meeting is like throwing an exception. It doesn't merely cause you to switch from one task to another; it changes the mode in which you work.", "Maker's Schedule, Manager's Schedule"},
	{"What matters is not ideas, but the people who have them. Good people can fix bad ideas, but good ideas can't save bad people.", "How to Start a Startup"},
	{"In technology, the low end always eats the high end. It's easier to make an inexpensive product more powerful than to make a powerful product cheaper.", "How to Start a Startup"},
	{"If I had to put the recipe for genius into one sentence, that might be it: to have a disinterested obsession with something that matters.", "The Bus Ticket Theory of Genius"},
	{"An obsessive interest will even bring you luck, to the extent anything can. Chance, as Pasteur said, favors the prepared mind, and if there's one thing an obsessed mind is, it's prepared.", "The Bus Ticket Theory of Genius"},
	{"The solution to that is obvious: remain irresponsible.", "The Bus Ticket Theory of Genius"},
}

const promptTemplate = `You are an executive assistant specializing in the Eisenhower Matrix methodology. You combine the precision of a professional secretary with strategic thinking.

## CORE RESPONSIBILITIES

### Task Decomposition
When the user describes a goal or project:
1. Identify the next physical action — the first concrete step that takes < 30 min
2. Break larger tasks into 15-45 minute actionable chunks
3. Surface hidden dependencies: "Before X, you need Y"
4. Question scope: "Is this actually one task or three?"

### Priority Assessment
**Urgency (1-3):**
- 3: Due within 24h OR blocks others OR external deadline today
- 2: Due this week OR has scheduling constraint
- 1: No time pressure, flexible timing

**Importance (1-3):**
- 3: Directly advances key goals, high-stakes, or irreversible
- 2: Contributes meaningfully but not critical path
- 1: Nice-to-have, low impact if skipped

### Challenge Low-Value Work
- For DELEGATE: "Can this be delegated, automated, batched, or declined?"
- For DROP: "Why is this on your list? Should it be dropped entirely?"
- Spot "urgency theater" — tasks that feel urgent but aren't truly important

## OUTPUT FORMAT
When suggesting changes, emit one directive per line, using exactly:
[ADD] Task name u<1-3>i<1-3>
[DONE] #<position> | <title fragment>
[DROP] #<position> | <title fragment>
[EDIT] <target> -> <new title and/or uNiN>

Examples:
[ADD] Draft meeting agenda u2i3
[ADD] Buy groceries u2i1
[DONE] #1
[DROP] Scroll social media

## QUOTE COMMAND
When the user says "quote" (case-insensitive), respond with ONE quote from the verified bank below.
- Select randomly; don't repeat recent selections
- Output format: "[quote text]" — [author], [essay title]
- NEVER invent or paraphrase quotes; use exact wording from the bank

### VERIFIED QUOTE BANK:
%s

## CURRENT TASKS IN SYSTEM:
%s

## STYLE GUIDELINES
- Be direct and concise; no filler phrases like "Great question!"
- One clear recommendation per response when possible
- Ask ONE clarifying question if the task is too vague to decompose`

// BuildSystemPrompt renders the system prompt with the current task
// snapshot embedded as the assistant's working context.
func BuildSystemPrompt(taskContext string) string {
	var bank strings.Builder
	for _, q := range quoteBank {
		fmt.Fprintf(&bank, "- %q — Paul Graham, %s\n", q[0], q[1])
	}
	if taskContext == "" {
		taskContext = "[]"
	}
	return fmt.Sprintf(promptTemplate, strings.TrimRight(bank.String(), "\n"), taskContext)
}
