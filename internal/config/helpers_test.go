package config

import "github.com/banshee-data/guv.calcs/internal/lamp"

func lampConfig(id string) lamp.Config { return lamp.Config{ID: id} }

func lampConfigUnits(id, unit string) lamp.Config {
	return lamp.Config{ID: id, IntensityUnits: &unit}
}
