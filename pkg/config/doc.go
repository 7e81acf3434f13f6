/*
Package config loads and validates migration plans.

	            +-------------+
	            |    Plan     |
	            | files/rules |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Describes a migration run as a Plan: an ordered file list, an ordered rule
  list and the reminders printed when the run ends
- Parses plan files, choosing the parser from the file extension
- Validates that every rule compiles before any file is touched

A plan file is optional. Without one the built-in plan from package preset is
used.

🔍 Example (YAML):

	files:
	  - frontend/pages/auth.tsx
	rules:
	  - name: navigate-call
	    pattern: 'navigate\(([^)]+)\)'
	    replacement: 'router.push(${1})'
	    files: 'frontend/pages/**'
	reminders:
	  - <Outlet /> components must be replaced with {children}

🔍 Example (HCL):

	files = ["frontend/pages/auth.tsx"]

	rule "navigate-call" {
	  pattern     = "navigate\\(([^)]+)\\)"
	  replacement = "router.push($${1})"
	}
*/
package config
