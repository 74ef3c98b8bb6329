package pageindex

// LLM prompt templates used during indexing and search.

// SystemDocumentAnalyzer is the system prompt for all indexing and search calls.
const SystemDocumentAnalyzer = `You are an expert document analyzer. You help extract structure, navigate content, and answer questions about documents. Always respond with valid JSON when requested.`

// GenerateTOCPrompt extracts the hierarchical section structure from tagged
// document text.
const GenerateTOCPrompt = `You are an expert in extracting hierarchical tree structure, your task is to generate the tree structure of the document.

The structure variable is the numeric system which represents the index of the hierarchy section in the table of contents. For example, the first section has structure index 1, the first subsection has structure index 1.1, the second subsection has structure index 1.2, etc.

For the title, you need to extract the original title from the text, only fix the space inconsistency.

The provided text contains tags like <physical_index_X> and <physical_index_X> to indicate the start and end of page X.

For the physical_index, you need to extract the physical index of the start of the section from the text. Keep the <physical_index_X> format.

Document text:
%s

The response should be in the following format:
[
    {
        "structure": <structure index, "x.x.x"> (string),
        "title": <title of the section, keep the original title>,
        "physical_index": "<physical_index_X> (keep the format)"
    },
    ...
]

Directly return the final JSON structure. Do not output anything else.`

// TreeSearchPrompt asks the model to reason over a serialized tree and pick
// the sections relevant to a query.
const TreeSearchPrompt = `You are an expert at navigating hierarchical document structures to find relevant information.

You are given:
1. A query/question from the user
2. A hierarchical tree structure of a document with sections and page indices

Your task is to analyze the tree structure and identify which sections are most likely to contain information relevant to the query.

Tree structure:
%s

User query: %s

Reply in JSON format:
{
    "thinking": <explain your reasoning about which sections are relevant and why>,
    "relevant_sections": [
        {
            "title": <section title>,
            "start_index": <page number where section starts>,
            "end_index": <page number where section ends>,
            "relevance": <"high", "medium", or "low">,
            "reason": <why this section is relevant to the query>
        },
        ...
    ]
}

Order sections by relevance (most relevant first).
Directly return the final JSON structure. Do not output anything else.`

// CheckTitleAppearancePrompt verifies that a section title appears in the
// text of its claimed start page.
const CheckTitleAppearancePrompt = `Your job is to check if the given section appears or starts in the given page text.

Note: do fuzzy matching, ignore any space inconsistency in the page text.

The given section title is: %s
The given page text is:
%s

Reply format:
{
    "thinking": <why do you think the section appears or starts in the page text>,
    "answer": "yes or no" (yes if the section appears or starts in the page text, no otherwise)
}
Directly return the final JSON structure. Do not output anything else.`

// SummaryPrompt generates a short summary for one section of a document.
const SummaryPrompt = `You are given a section from a document. Generate a concise summary (2-3 sentences) describing the main topics and key information covered in this section.

Section Title: %s

Section Content:
%s

Provide ONLY the summary text, nothing else. Be specific about what information this section contains that would help someone searching for relevant content.`

// DocumentDescriptionPrompt generates a one-sentence description for the
// whole document from its structure.
const DocumentDescriptionPrompt = `You are an expert in generating document descriptions. You are given the structure of a document. Generate a one-sentence description that distinguishes this document from others.

Document Structure:
%s

Respond with just the description, no other text.`

// RAGAnswerPrompt answers a question from retrieved section content.
const RAGAnswerPrompt = `You are a helpful assistant answering questions about a document. Use ONLY the retrieved context below to answer the question. If the context does not contain the answer, say so.

Retrieved context:
%s

Question: %s

Answer concisely based on the context.`
