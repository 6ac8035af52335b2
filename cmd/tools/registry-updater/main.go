// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"guardmatch/pkg/registry"
)

var registryPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	removeCmd := flag.NewFlagSet("remove", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	// Add command flags
	nameAdd := addCmd.String("name", "", "Profile name (e.g., proximity-first)")
	description := addCmd.String("description", "", "Description")
	wDistance := addCmd.Float64("distance", 0.30, "Distance weight")
	wGuardType := addCmd.Float64("guardType", 0.20, "Guard-type weight")
	wLicence := addCmd.Float64("licence", 0.20, "Licence weight")
	wAvailability := addCmd.Float64("availability", 0.15, "Availability weight")
	wCertifications := addCmd.Float64("certifications", 0.15, "Certifications weight")
	addCmd.StringVar(&registryPath, "path", "configs/scoring-profiles.json", "Path to registry file")

	// Remove command flags
	nameRemove := removeCmd.String("name", "", "Profile name to remove")
	removeCmd.StringVar(&registryPath, "path", "configs/scoring-profiles.json", "Path to registry file")

	validateCmd.StringVar(&registryPath, "path", "configs/scoring-profiles.json", "Path to registry file")
	listCmd.StringVar(&registryPath, "path", "configs/scoring-profiles.json", "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *nameAdd == "" {
			fmt.Println("Error: name is required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		profile := registry.Profile{
			Name:        *nameAdd,
			Description: *description,
			Weights: registry.Weights{
				Distance:       *wDistance,
				GuardType:      *wGuardType,
				Licence:        *wLicence,
				Availability:   *wAvailability,
				Certifications: *wCertifications,
			},
		}
		if err := addProfile(&profile); err != nil {
			fmt.Printf("Error adding profile: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added profile: %s\n", *nameAdd)

	case "remove":
		removeCmd.Parse(os.Args[2:])
		if *nameRemove == "" {
			fmt.Println("Error: name is required for remove.")
			removeCmd.Usage()
			os.Exit(1)
		}
		if err := removeProfile(*nameRemove); err != nil {
			fmt.Printf("Error removing profile: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed profile: %s\n", *nameRemove)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateProfiles(); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}

	case "list":
		listCmd.Parse(os.Args[2:])
		if err := listProfiles(); err != nil {
			fmt.Printf("Error listing profiles: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func addProfile(profile *registry.Profile) error {
	// The new profile must satisfy the scoring rules before it is written.
	if err := profile.Config().Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			reg = &registry.ProfileRegistry{
				Version:  "1.0.0",
				Profiles: []registry.Profile{},
			}
		} else {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}

	if _, exists := reg.Find(profile.Name); exists {
		return fmt.Errorf("profile %q already exists", profile.Name)
	}

	reg.Profiles = append(reg.Profiles, *profile)
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	return saveRegistry(reg, registryPath)
}

func removeProfile(name string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	kept := reg.Profiles[:0]
	found := false
	for _, p := range reg.Profiles {
		if p.Name == name {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return fmt.Errorf("profile %q not found", name)
	}

	reg.Profiles = kept
	reg.LastUpdated = time.Now().Format(time.RFC3339)
	return saveRegistry(reg, registryPath)
}

func validateProfiles() error {
	// LoadRegistry already runs schema validation plus the weight-sum and
	// threshold-range rules per profile.
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return err
	}

	if len(reg.Profiles) == 0 {
		return fmt.Errorf("registry contains no profiles")
	}

	fmt.Printf("Registry validation passed. Found %d profiles.\n", len(reg.Profiles))
	return nil
}

func listProfiles() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	for _, p := range reg.Profiles {
		w := p.Weights
		fmt.Printf("%-20s dist=%.2f type=%.2f lic=%.2f avail=%.2f cert=%.2f  %s\n",
			p.Name, w.Distance, w.GuardType, w.Licence, w.Availability, w.Certifications, p.Description)
	}
	return nil
}

// saveRegistry handles saving the registry to file
func saveRegistry(reg *registry.ProfileRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	return nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add      Add a new scoring profile to the registry
  remove   Remove a scoring profile
  validate Validate the registry file
  list     List all scoring profiles
  help     Show this help message

Examples:
  registry-updater add -name proximity-first -description "Prioritise nearby guards" -distance 0.50 -guardType 0.15 -licence 0.15 -availability 0.10 -certifications 0.10
  registry-updater remove -name proximity-first
  registry-updater validate -path configs/scoring-profiles.json
  registry-updater list

Use 'registry-updater <command> -h' for more information about a command.
`)
}
