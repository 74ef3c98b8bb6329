package pageindex

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saransh09/pageindex/internal/llm"
)

// Completer abstracts the reasoning collaborator used during indexing and
// search. *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// IndexerOptions controls optional indexing stages.
type IndexerOptions struct {
	// VerifyIndices checks that each section title appears on its claimed
	// start page. Failed verification is reported, not fixed.
	VerifyIndices bool
	// GenerateSummaries produces a short summary for each node.
	GenerateSummaries bool
	// GenerateDescription produces a one-sentence document description.
	GenerateDescription bool
	// AssignNodeIDs writes sequential node IDs across the finished tree.
	AssignNodeIDs bool
}

// DefaultIndexerOptions returns the default indexing configuration.
func DefaultIndexerOptions() IndexerOptions {
	return IndexerOptions{AssignNodeIDs: true}
}

// TreeIndexer builds hierarchical tree indexes over documents using the
// reasoning collaborator.
type TreeIndexer struct {
	client  Completer
	options IndexerOptions
}

// NewTreeIndexer creates an indexer with default options.
func NewTreeIndexer(client Completer) *TreeIndexer {
	return &TreeIndexer{client: client, options: DefaultIndexerOptions()}
}

// NewTreeIndexerWithOptions creates an indexer with explicit options.
func NewTreeIndexerWithOptions(client Completer, options IndexerOptions) *TreeIndexer {
	return &TreeIndexer{client: client, options: options}
}

// Index builds a tree index for the document.
func (ti *TreeIndexer) Index(ctx context.Context, doc *Document) (*DocumentTree, error) {
	if doc.PageCount() == 0 {
		return nil, fmt.Errorf("indexing %q: %w", doc.Name, ErrEmptyDocument)
	}

	items, err := ti.extractStructure(ctx, doc.ContentWithTags())
	if err != nil {
		return nil, err
	}

	nodes := BuildTree(items, doc.PageCount())
	tree := NewDocumentTree(doc.Name, nodes, doc.PageCount())

	if ti.options.VerifyIndices {
		ti.verifyTree(ctx, doc, tree)
	}
	if ti.options.GenerateSummaries {
		if err := ti.summarizeTree(ctx, doc, tree); err != nil {
			return nil, err
		}
	}
	if ti.options.GenerateDescription {
		desc, err := ti.describeTree(ctx, tree)
		if err != nil {
			return nil, err
		}
		tree.Description = desc
	}
	if ti.options.AssignNodeIDs {
		WriteNodeIDs(tree.Nodes)
	}

	return tree, nil
}

func (ti *TreeIndexer) extractStructure(ctx context.Context, content string) ([]RawTOCItem, error) {
	prompt := fmt.Sprintf(GenerateTOCPrompt, content)
	response, err := ti.client.Complete(ctx, SystemDocumentAnalyzer, prompt)
	if err != nil {
		return nil, err
	}
	return parseTOCResponse(response)
}

// parseTOCResponse accepts either a bare JSON array of descriptors or an
// object with a table_of_contents field.
func parseTOCResponse(response string) ([]RawTOCItem, error) {
	payload := llm.ExtractJSON(response)

	var items []RawTOCItem
	if err := json.Unmarshal([]byte(payload), &items); err == nil {
		return items, nil
	}

	var wrapper struct {
		TableOfContents []RawTOCItem `json:"table_of_contents"`
	}
	if err := json.Unmarshal([]byte(payload), &wrapper); err == nil && wrapper.TableOfContents != nil {
		return wrapper.TableOfContents, nil
	}

	return nil, unparsable(response, fmt.Errorf("response is neither a descriptor array nor a table_of_contents object"))
}

// verifyTree checks each node's title against its start page. Verification
// failures do not abort indexing; a node that fails keeps its indices.
func (ti *TreeIndexer) verifyTree(ctx context.Context, doc *Document, tree *DocumentTree) {
	tree.Walk(func(node *TreeNode) {
		page := doc.GetPage(node.StartIndex)
		if page == nil {
			return
		}
		prompt := fmt.Sprintf(CheckTitleAppearancePrompt, node.Title, page.Content)
		response, err := ti.client.Complete(ctx, SystemDocumentAnalyzer, prompt)
		if err != nil {
			return
		}
		var parsed struct {
			Answer string `json:"answer"`
		}
		if json.Unmarshal([]byte(llm.ExtractJSON(response)), &parsed) != nil {
			return
		}
		node.Verified = strings.EqualFold(parsed.Answer, "yes")
	})
}

func (ti *TreeIndexer) summarizeTree(ctx context.Context, doc *Document, tree *DocumentTree) error {
	var walkErr error
	tree.Walk(func(node *TreeNode) {
		if walkErr != nil {
			return
		}
		content := doc.ContentRange(node.StartIndex, node.EndIndex)
		if content == "" {
			return
		}
		prompt := fmt.Sprintf(SummaryPrompt, node.Title, content)
		summary, err := ti.client.Complete(ctx, SystemDocumentAnalyzer, prompt)
		if err != nil {
			walkErr = fmt.Errorf("summarizing %q: %w", node.Title, err)
			return
		}
		node.Summary = strings.TrimSpace(summary)
	})
	return walkErr
}

func (ti *TreeIndexer) describeTree(ctx context.Context, tree *DocumentTree) (string, error) {
	structure, err := tree.ToJSON()
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(DocumentDescriptionPrompt, structure)
	desc, err := ti.client.Complete(ctx, SystemDocumentAnalyzer, prompt)
	if err != nil {
		return "", fmt.Errorf("describing %q: %w", tree.Name, err)
	}
	return strings.TrimSpace(desc), nil
}

// IndexFile loads a document from path and builds its tree index.
func IndexFile(ctx context.Context, path string, client Completer) (*DocumentTree, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return NewTreeIndexer(client).Index(ctx, doc)
}
