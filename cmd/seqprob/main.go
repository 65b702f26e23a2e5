// Copyright (c) 2015 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	osuser "os/user"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/akualab/seqprob"
	"github.com/akualab/seqprob/model"
	"github.com/akualab/seqprob/model/hmm"
	"github.com/akualab/seqprob/server"
	"github.com/alecthomas/kingpin/v2"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	appName    = "seqprob"
	appVersion = "0.2"
)

var (
	props  *Properties
	logDir *string
)

var (
	app         = kingpin.New(appName, "Sequence probability tool for discrete hidden Markov models.")
	logToStderr = app.Flag("log-stderr", "Logs are written to standard error instead of files.").Default("true").Bool()
	vLevel      = app.Flag("log-level", "Enable V-leveled logging at the specified level.").Default("0").Short('v').String()
	configFile  = app.Flag("config", "YAML config file.").String()

	score         = app.Command("score", "Compute the probability of each sequence in a JSON lines file.")
	scoreModel    = score.Flag("model", "Model tables file (YAML or JSON).").String()
	scoreData     = score.Flag("data", "Sequences file. Reads stdin when empty.").String()
	scoreOut      = score.Flag("out", "Results file. Writes stdout when empty.").String()
	scoreLogSpace = score.Flag("log-space", "Use the scaled forward pass.").Bool()
	scoreZero     = score.Flag("unknown-zero", "Unknown symbols have probability zero instead of failing.").Bool()
	scoreWorkers  = score.Flag("workers", "Number of scoring goroutines.").Int()
	scoreCache    = score.Flag("cache", "Max number of cached sequences.").Int64()

	sample       = app.Command("sample", "Generate random sequences using a model.")
	sampleModel  = sample.Flag("model", "Model tables file (YAML or JSON).").String()
	sampleNum    = sample.Flag("num", "Number of sequences.").Int()
	sampleLength = sample.Flag("length", "Sequence length.").Int()
	sampleSeed   = sample.Flag("seed", "Seed for random number generator.").Int64()

	coins = app.Command("coins", "Print the two-coin examples.")

	serve      = app.Command("serve", "Serve sequence probabilities over HTTP.")
	serveModel = serve.Flag("model", "Model tables file (YAML or JSON).").String()
	serveAddr  = serve.Flag("addr", "Listen address.").String()
)

// Properties of seqprob.
type Properties struct {
	Workspace string `toml:"workspace_dir"`
	LogDir    string `toml:"log_dir"`
}

func init() {
	currDir, e1 := os.Getwd()
	seqprob.Fatal(e1)
	propPath := currDir
	u, e2 := osuser.Current()
	if e2 == nil {
		propPath = filepath.Join(u.HomeDir, ".config", appName)
	}
	propPath = filepath.Join(propPath, "properties.toml")
	propEnvVar := os.Getenv("SEQPROB_PROPERTIES")
	if len(propEnvVar) > 0 {
		propPath = propEnvVar
	}

	// Read toml properties file from propPath.
	props = new(Properties)
	dat, e3 := os.ReadFile(propPath)
	if e3 == nil {
		_, e4 := toml.Decode(string(dat), props)
		seqprob.Fatal(errors.Wrapf(e4, "properties file %s", propPath))
	}
	defaultLogDir := filepath.Join(currDir, "log")
	if len(props.LogDir) > 0 {
		defaultLogDir = props.LogDir
	}
	logDir = app.Flag("log", "Log output dir.").Default(defaultLogDir).String()
}

func main() {
	app.Version(appVersion)
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	initGlog()
	defer glog.Flush()
	printAppValues()
	checkDir(props.Workspace)

	config := seqprob.DefaultConfig()
	if len(*configFile) > 0 {
		c, err := seqprob.ReadConfig(*configFile)
		seqprob.Fatal(err)
		config = c
	}

	switch cmd {

	case score.FullCommand():
		glog.V(3).Info("start score command")
		doScore(config)

	case sample.FullCommand():
		glog.V(3).Info("start sample command")
		doSample(config)

	case coins.FullCommand():
		glog.V(3).Info("start coins command")
		seqprob.Fatal(runCoins(os.Stdout))

	case serve.FullCommand():
		glog.V(3).Info("start serve command")
		doServe(config)

	default:
		app.Usage(os.Args[1:])
	}
}

func doScore(config *seqprob.Config) {

	setString(&config.ModelFile, *scoreModel)
	setString(&config.DataFile, *scoreData)
	setString(&config.ResultsFile, *scoreOut)
	if *scoreLogSpace {
		config.LogSpace = true
	}
	if *scoreZero {
		config.UnknownSymbols = hmm.ZeroSymbols.String()
	}
	if *scoreWorkers > 0 {
		config.Workers = *scoreWorkers
	}
	if *scoreCache > 0 {
		config.CacheSize = *scoreCache
	}

	m := loadModel(config)
	s, err := seqprob.NewScorer(m, config.ScorerOptions()...)
	seqprob.Fatal(err)
	defer s.Close()

	var r io.Reader = os.Stdin
	if len(config.DataFile) > 0 {
		f, err := os.Open(config.DataFile)
		seqprob.Fatal(errors.Wrap(err, "opening data file"))
		defer f.Close()
		r = f
	}
	seqs, err := model.ReadSeqs(r)
	seqprob.Fatal(errors.Wrap(err, "reading sequences"))

	results, err := s.ScoreAll(context.Background(), seqs)
	seqprob.Fatal(err)

	w := output(config.ResultsFile)
	defer w.Close()
	seqprob.Fatal(seqprob.WriteResults(w, results))

	hits, misses := s.Stats()
	glog.Infof("scored %d sequences, cache hits: %d, misses: %d", len(results), hits, misses)
}

func doSample(config *seqprob.Config) {

	setString(&config.ModelFile, *sampleModel)
	if *sampleNum > 0 {
		config.Generator.Num = *sampleNum
	}
	if *sampleLength > 0 {
		config.Generator.Length = *sampleLength
	}
	if *sampleSeed != 0 {
		config.Generator.Seed = *sampleSeed
	}

	m := loadModel(config)
	gen := hmm.NewGenerator(m, config.Generator.Seed)
	seqs := make([]model.Seq, config.Generator.Num)
	for i := range seqs {
		seq, err := gen.Seq(m.Name()+"-"+strconv.Itoa(i), config.Generator.Length)
		seqprob.Fatal(err)
		seqs[i] = seq
	}
	seqprob.Fatal(model.WriteSeqs(os.Stdout, seqs))
}

func doServe(config *seqprob.Config) {

	setString(&config.ModelFile, *serveModel)
	setString(&config.Server.Addr, *serveAddr)

	m := loadModel(config)
	s, err := seqprob.NewScorer(m, config.ScorerOptions()...)
	seqprob.Fatal(err)
	defer s.Close()

	r := server.NewRouter(s, m, prometheus.NewRegistry())
	glog.Infof("serving model [%s] on %s", m.Name(), config.Server.Addr)
	seqprob.Fatal(http.ListenAndServe(config.Server.Addr, r))
}

func loadModel(config *seqprob.Config) *hmm.Model {

	if len(config.ModelFile) == 0 {
		glog.Fatal("missing model file, use --model or set model_file in the config file")
	}
	opts, err := config.ModelOptions()
	seqprob.Fatal(err)
	m, err := hmm.ReadModelFile(config.ModelFile, opts...)
	seqprob.Fatal(err)
	return m
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Returns stdout when fn is empty.
func output(fn string) io.WriteCloser {
	if len(fn) == 0 {
		return nopCloser{os.Stdout}
	}
	checkDir(filepath.Dir(fn))
	f, err := os.Create(fn)
	seqprob.Fatal(errors.Wrap(err, "creating output file"))
	return f
}

func setString(dst *string, v string) {
	if len(v) > 0 {
		*dst = v
	}
}

// Creates dir if it doesn't exist.
func checkDir(path string) {

	if len(path) == 0 {
		return
	}
	e := os.MkdirAll(path, 0755)
	if e != nil {
		glog.Fatal(e)
	}
}

func initGlog() {

	checkDir(*logDir)
	if *logToStderr {
		flag.Set("alsologtostderr", "true")
	}
	flag.Set("v", *vLevel)
	flag.Set("log_dir", *logDir)
}

func printAppValues() {
	glog.Info("app properties: ", *props)
	glog.Info("app version: ", appVersion)
	glog.Info("app log to std err: ", *logToStderr)
	glog.Info("app log level: ", *vLevel)
	glog.Info("app log dir: ", *logDir)
	glog.Info("app config file: ", *configFile)
}
