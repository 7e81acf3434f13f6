/*
Package operation runs a migration plan over its files.

	+-------------+
	|  Migrator   |
	|  (Run)      |
	+------+------+
	       |  for each file, in plan order
	+------+------+
	|   Process   |  read -> rules -> compare -> write
	+------+------+
	       |
	+------+------+
	|   status    |  FileManager + Outcome
	+-------------+

🔄 Flow:
1. Read the whole file through status.FileManager
2. Apply every rule in declared order; each rule sees the previous output
3. Unchanged content is skipped, changed content is rewritten in one step
4. The result is printed before the next file is read

⚡ Guarantees:
- Files are processed one at a time, in order, with no state carried between them
- A missing or unreadable file is reported and the run moves on
- The closing banner is printed whatever happened to the files
- Nothing is rolled back; a rewritten file stays rewritten

🔍 Example:

	m, err := operation.New(operation.Options{
		Plan:   preset.NextRouter(),
		Files:  status.NewManager("."),
		Logger: log.New(os.Stdout, zerolog.Nop()),
	})
	if err != nil {
		return err
	}
	m.Run(ctx)
*/
package operation
