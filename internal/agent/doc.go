// Package agent reads and prepares the agents of a CI repository.
//
// Agents live in two places. The AGENTS.md index lists every agent as a
// "### Name - description" heading followed by its prompt text, and each
// agent may own a toolkit directory under AGENTS/<Name>/ holding a README,
// long-term memory, a continuous learning log, session records and
// metadata.json.
//
// Catalog and Extract work on the index. Scan and Inspect read toolkit
// directories. Loader combines both to produce the working memory file that
// is handed to the assistant process.
package agent
