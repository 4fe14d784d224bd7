// Package rule provides the rule id set type used throughout lintsel.
//
// Rule ids are opaque strings; a [Set] performs deduplicated membership
// and the set algebra (difference, union) that rule resolution is built
// on. Sets marshal as sorted lists so output and config round-trips are
// deterministic.
package rule
