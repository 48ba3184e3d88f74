package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# RFPCheck configuration
version: "1.0"

service:
  # Base URL of the analysis service; /analyze/ is appended
  endpoint: "http://localhost:8000"
  timeout: 2m
  # Reject verdicts other than "Yes" or "No"
  validate_response: true

intake:
  accepted_types:
    - application/pdf
  max_files: 1
  # When set, files created in <inbox_dir>/rfp and <inbox_dir>/proposal are
  # dropped into the matching slot
  inbox_dir: ""

loading:
  # Path or http(s) URL of a {"facts": [{"text": "..."}]} document;
  # empty uses the built-in facts
  facts_file: ""
  rotation_period: 5s
  tick_period: 1s
  minimum_duration: 15s
  # Keep the loading screen up for minimum_duration even when the
  # service answers sooner
  enforce_minimum: true

output:
  default_format: text  # text|json|markdown|csv
  color_mode: auto      # auto|always|never
  verbose: false
  theme: default        # default|high-contrast|minimal
`
}

// MinimalSampleConfig returns the smallest useful configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"
service:
  endpoint: "http://localhost:8000"
`
}
