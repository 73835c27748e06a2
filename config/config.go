// Copyright 2020 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultSeed       = 42
	DefaultNumClasses = 4
	DefaultSeparator  = ","
)

// Config is the configuration for gorse-split.
type Config struct {
	Split   SplitConfig   `mapstructure:"split"`
	Port    PortConfig    `mapstructure:"port"`
	Storage StorageConfig `mapstructure:"storage"`
}

// SplitConfig is the configuration of the split command.
type SplitConfig struct {
	Input            string  `mapstructure:"input" validate:"required"`
	Separator        string  `mapstructure:"separator" validate:"required"`
	StratifyColumn   string  `mapstructure:"stratify_column" validate:"required"`
	IdentifierColumn string  `mapstructure:"id_column" validate:"required"`
	FracTrain        float64 `mapstructure:"frac_train" validate:"gte=0,lte=1"`
	FracVal          float64 `mapstructure:"frac_val" validate:"gte=0,lte=1"`
	FracTest         float64 `mapstructure:"frac_test" validate:"gte=0,lte=1"`
	NumClasses       int     `mapstructure:"num_classes" validate:"gte=0"` // zero means discover classes from data
	Classes          []int   `mapstructure:"classes"`
	Seed             int64   `mapstructure:"seed"`
	TrainOutput      string  `mapstructure:"train_output" validate:"required"`
	ValidOutput      string  `mapstructure:"valid_output" validate:"required"`
	TestOutput       string  `mapstructure:"test_output" validate:"required"`
	Timestamp        string  `mapstructure:"timestamp"` // empty means the current time
}

// PortConfig is the configuration of the port command.
type PortConfig struct {
	Input     string `mapstructure:"input" validate:"required"`
	Separator string `mapstructure:"separator" validate:"required"`
	Column    string `mapstructure:"column" validate:"required"`
	SourceDir string `mapstructure:"source_dir" validate:"required"`
	DestDir   string `mapstructure:"dest_dir" validate:"required"`
}

type StorageConfig struct {
	S3    S3Config        `mapstructure:"s3"`
	GCS   GCSConfig       `mapstructure:"gcs"`
	Azure AzureBlobConfig `mapstructure:"azure"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type GCSConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	Endpoint        string `mapstructure:"endpoint"`
}

type AzureBlobConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	AccountName      string `mapstructure:"account_name"`
	AccountKey       string `mapstructure:"account_key"`
	Endpoint         string `mapstructure:"endpoint"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Split: SplitConfig{
			Separator:  DefaultSeparator,
			FracTrain:  0.8,
			FracVal:    0.1,
			FracTest:   0.1,
			NumClasses: DefaultNumClasses,
			Classes:    []int{},
			Seed:       DefaultSeed,
		},
		Port: PortConfig{
			Separator: DefaultSeparator,
		},
		Storage: StorageConfig{
			S3: S3Config{
				Endpoint: "s3.amazonaws.com",
				UseSSL:   true,
			},
		},
	}
}

func setDefault(v *viper.Viper) {
	defaultConfig := GetDefaultConfig()
	// [split]
	v.SetDefault("split.input", "")
	v.SetDefault("split.separator", defaultConfig.Split.Separator)
	v.SetDefault("split.stratify_column", "")
	v.SetDefault("split.id_column", "")
	v.SetDefault("split.frac_train", defaultConfig.Split.FracTrain)
	v.SetDefault("split.frac_val", defaultConfig.Split.FracVal)
	v.SetDefault("split.frac_test", defaultConfig.Split.FracTest)
	v.SetDefault("split.num_classes", defaultConfig.Split.NumClasses)
	// a string default lets comma-separated environment values reach the slice decode hook
	v.SetDefault("split.classes", "")
	v.SetDefault("split.seed", defaultConfig.Split.Seed)
	v.SetDefault("split.train_output", "")
	v.SetDefault("split.valid_output", "")
	v.SetDefault("split.test_output", "")
	v.SetDefault("split.timestamp", "")
	// [port]
	v.SetDefault("port.input", "")
	v.SetDefault("port.separator", defaultConfig.Port.Separator)
	v.SetDefault("port.column", "")
	v.SetDefault("port.source_dir", "")
	v.SetDefault("port.dest_dir", "")
	// [storage.s3]
	v.SetDefault("storage.s3.endpoint", defaultConfig.Storage.S3.Endpoint)
	v.SetDefault("storage.s3.access_key_id", "")
	v.SetDefault("storage.s3.secret_access_key", "")
	v.SetDefault("storage.s3.use_ssl", defaultConfig.Storage.S3.UseSSL)
	// [storage.gcs]
	v.SetDefault("storage.gcs.credentials_file", "")
	v.SetDefault("storage.gcs.endpoint", "")
	// [storage.azure]
	v.SetDefault("storage.azure.connection_string", "")
	v.SetDefault("storage.azure.account_name", "")
	v.SetDefault("storage.azure.account_key", "")
	v.SetDefault("storage.azure.endpoint", "")
}

// flagKeys maps command line flags of each command to configuration keys.
var flagKeys = map[string]map[string]string{
	"split": {
		"input":           "split.input",
		"sep":             "split.separator",
		"stratify-column": "split.stratify_column",
		"id-column":       "split.id_column",
		"frac-train":      "split.frac_train",
		"frac-val":        "split.frac_val",
		"frac-test":       "split.frac_test",
		"num-classes":     "split.num_classes",
		"classes":         "split.classes",
		"seed":            "split.seed",
		"train-output":    "split.train_output",
		"valid-output":    "split.valid_output",
		"test-output":     "split.test_output",
		"timestamp":       "split.timestamp",
	},
	"port": {
		"input":      "port.input",
		"sep":        "port.separator",
		"column":     "port.column",
		"source-dir": "port.source_dir",
		"dest-dir":   "port.dest_dir",
	},
}

// LoadConfig loads configuration for a command. Values are resolved in the order of command line flags,
// environment variables (GORSE_SPLIT_SPLIT_INPUT for split.input), the config file and defaults.
func LoadConfig(path, command string, flagSet *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefault(v)

	// load config file
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "failed to read config file %s", path)
		}
	}

	// load environment variables
	v.SetEnvPrefix("GORSE_SPLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// bind command line flags
	if flagSet != nil {
		for name, key := range flagKeys[command] {
			if flag := flagSet.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, errors.Trace(err)
				}
			}
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}
