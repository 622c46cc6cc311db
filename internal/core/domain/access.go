package domain

// PermittedSources maps a requested tab and filter source set to the
// source set the backend call and the results view are allowed to use.
//
// Rules, applied in order:
//  1. Unauthenticated users never reach protected content: a protected
//     tab (forums, tickets, ai-deeper) collapses to docs only, whatever
//     the filters request.
//  2. The aggregate tab uses the filter source set, reduced to docs only
//     when unauthenticated.
//  3. A concrete single-source tab that passes rule 1 yields exactly
//     that source.
//
// The function is pure: no side effects, no network.
func PermittedSources(tab Tab, filters SearchFilters, authenticated bool) []Source {
	if !authenticated && tab.IsProtected() {
		return []Source{SourceDocs}
	}

	if tab == TabAll || tab == TabAIDeeper {
		if !authenticated {
			return []Source{SourceDocs}
		}
		return filters.Normalize().Sources
	}

	if src, ok := tab.Source(); ok {
		return []Source{src}
	}

	// Unknown tab: fall back to the filter set under the same
	// authenticated-or-docs-only reduction as the aggregate tab.
	if !authenticated {
		return []Source{SourceDocs}
	}
	return filters.Normalize().Sources
}
