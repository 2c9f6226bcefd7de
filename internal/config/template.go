package config

const configTemplate = `# fecho configuration file
# Every setting can also come from the environment (FECHO_COUNT, FECHO_TOP, ...)
# and is overridden by the matching command-line flag.

# How many times each input is printed
count: 1

# Print at most this many lines of each file or stdin pass (0 = all lines)
top: 0

# Line printed between repetitions. Leave commented out for no separator;
# an empty string prints a blank line.
# separator: "--"

# Diagnostics on stderr: debug, info, warn, error
log_level: warn
`
