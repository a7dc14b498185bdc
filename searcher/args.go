package searcher

import "leaper/meta"

// Defaults for search

const DefaultDepth = meta.SEARCH_DEPTH

// Nodes at or below this remaining depth are scored by the heuristic in
// cutoff search.
const CutoffDepth = meta.CUTOFF_DEPTH
