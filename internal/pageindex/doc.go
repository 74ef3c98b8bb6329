// Package pageindex builds navigable hierarchical indexes over long
// documents and answers retrieval queries by reasoning over the hierarchy
// instead of chunk-and-embed vector search.
//
// # Overview
//
// A document is modeled as an ordered sequence of pages. An LLM extracts a
// flat list of section descriptors from the tagged document text; the
// builder turns that list into a validated tree of closed page ranges. At
// query time the serialized tree and the query go to the LLM in a single
// call, and the returned sections are filtered, ranked and optionally
// backed by sliced page content.
//
// # Key Concepts
//
//   - Tree-structured indexes: each node is a section with a title, an
//     inclusive page range, and child nodes.
//
//   - Structure codes: dotted-numeral strings like "1.2.3" encode a
//     section's position and depth in the hierarchy.
//
//   - Page-boundary markers: pages are wrapped in
//     <physical_index_N>...<physical_index_N> tags when submitted to the
//     LLM, which echoes the marker (or a bare integer) back as a section's
//     starting page.
//
// # Components
//
//   - document.go: page and document models, marker tagging
//   - loader.go: text, Markdown and PDF document loading
//   - tree.go: TreeNode and DocumentTree
//   - toc.go: flat descriptor list to tree conversion
//   - indexer.go: LLM-driven structure extraction
//   - search.go: reasoning-based search and ranking
//   - persist.go: JSON and gob persistence
package pageindex
