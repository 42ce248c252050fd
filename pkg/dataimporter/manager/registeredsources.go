package manager

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bikeflow/bikeflow/pkg/dataimporter/datasets"
	"github.com/bikeflow/bikeflow/pkg/util"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const defaultDataSourcesDirectory = "data/datasources/"

var ErrDatasetNotFound = errors.New("dataset could not be found")

func DataSourcesDirectory() string {
	return util.GetEnvironmentVariable("BIKEFLOW_DATASOURCES_DIR", defaultDataSourcesDirectory)
}

// GetRegisteredDataSets reads every YAML file under directory. A file may hold
// several data source documents, each listing its datasets.
func GetRegisteredDataSets(directory string) ([]datasets.DataSet, error) {
	var registeredDatasets []datasets.DataSet

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading data source file")

			sourceYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(sourceYaml))

			for {
				var datasource datasets.DataSource
				if err := decoder.Decode(&datasource); err != nil {
					if errors.Is(err, io.EOF) {
						break
					}

					return fmt.Errorf("failed to decode %s: %w", path, err)
				}

				for _, dataset := range datasource.Datasets {
					dataset.Identifier = fmt.Sprintf("%s-%s", datasource.Identifier, dataset.Identifier)
					dataset.DataSourceRef = datasource.Identifier

					if dataset.Provider.Name == "" {
						dataset.Provider = datasource.Provider
					}

					registeredDatasets = append(registeredDatasets, dataset)
				}
			}

			return nil
		})
	if err != nil {
		return nil, err
	}

	return registeredDatasets, nil
}

func GetDataset(directory string, identifier string) (datasets.DataSet, error) {
	registered, err := GetRegisteredDataSets(directory)
	if err != nil {
		return datasets.DataSet{}, err
	}

	for _, dataset := range registered {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return datasets.DataSet{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, identifier)
}
