/*
Package parseforest implements the core of a general context-free parser for
ambiguous grammars.

It is an Earley-style chart parser (package parseforest/chart) that produces
a compact shared parse forest (package parseforest/forest), detects infinite
derivations, applies grammar-author-controlled disambiguation, and exposes a
visitor-style "builder" API (package parseforest/build) that materializes
results (a single tree, a list of trees, a count, a lazy enumeration, or a
custom aggregation) in a stackless manner.

Package structure:

■ chart: the chart-parsing engine, producing a forest of partial items.

■ forest: forest post-processing (reverse edges, penalty and preference
trimming, loop detection) and the ParseForest wrapper.

■ build: the stackless builder traversal and the standard builders.

■ report: expected-symbol summarization for failed parses.

The base package contains the grammar data model and partial-item type used
throughout the other packages.

Lexing, a command-line surface, and the concrete shapes of trees callers
choose to build are explicitly out of scope.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2024 Kavan Labs

*/
package parseforest
