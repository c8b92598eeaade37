package config

// DefaultYAML is the commented starter configuration written by
// 'pacer init'.
const DefaultYAML = `# Pacer configuration
# Commits are paced out at random times inside the work-hours window.

# Absolute paths of the repositories pacer manages.
# Add with: pacer repos add <path>
repositories: []

work_hours:
  start: "09:00"
  end: "18:00"

commit_frequency:
  min_per_day: 3
  max_per_day: 8

# Bounds for synthetic edits made by 'pacer once --synthesize'.
line_changes:
  min_lines: 5
  max_lines: 50

# Only files with these extensions are considered.
file_extensions: [".py", ".js", ".html", ".css", ".md"]

# Commit message generation. Provider "gemini" needs PACER_GEMINI_KEY set.
message:
  provider: template
  # model: gemini-3-pro

# Uncomment to also log to a file.
# log_file: ~/.local/state/pacer/pacer.log
`
