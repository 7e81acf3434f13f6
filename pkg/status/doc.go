/*
Package status classifies per-file results and owns file access.

🎯 Purpose:
- Outcome: success, skipped, not-found or failed, one per file
- Tracker: results in processing order plus a Summary of counts
- FileManager: whole-file reads and atomic rewrites, so that the migration
  logic never calls os.* directly

📝 Design:
Every listed file ends in exactly one Outcome. Outcomes are independent of each
other; a failed file never changes how the next one is handled.

WriteFileAtomic writes into a temp file beside the target and renames it over
the target, so a crash mid-write leaves either the old or the new content.
Symlinks are resolved first, so a linked entry rewrites the file it points to
and the link itself survives. It refuses to create files that do not already
exist.
*/
package status
