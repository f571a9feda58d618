// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// disruptor-bench drives a disruptor pipeline at full speed for a fixed
// duration and reports the final sequence counters.
package main

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/valyala/fastrand"

	"code.hybscloud.com/disruptor"
)

var rootCmd = &cobra.Command{
	Use:   "disruptor-bench",
	Short: "Throughput benchmark for the disruptor pipeline ring",
	Long: `disruptor-bench runs one producer and a chain of consumers over a
bounded ring buffer for a fixed duration, then prints the number of messages
produced, the number consumed by each pipeline stage, and the throughput.

Flags can also be set through the environment with the DISRUPTOR prefix,
e.g. DISRUPTOR_EXPONENT=10.`,
	RunE: run,
}

func init() {
	f := rootCmd.Flags()
	f.IntP("exponent", "e", 8, "buffer capacity exponent (capacity = 2^exponent)")
	f.IntP("consumers", "c", 4, "number of chained pipeline consumers")
	f.DurationP("duration", "d", 3*time.Second, "benchmark run time")
	f.StringP("wait", "w", "spin", "wait policy: spin or backoff")
	f.Bool("random-payload", false, "randomize payload sizes instead of sequence-stamped messages")

	viper.SetEnvPrefix("DISRUPTOR")
	viper.AutomaticEnv()
	for _, name := range []string{"exponent", "consumers", "duration", "wait", "random-payload"} {
		if err := viper.BindPFlag(name, f.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	var policy disruptor.WaitPolicy
	switch w := viper.GetString("wait"); w {
	case "spin":
		policy = disruptor.WaitSpin
	case "backoff":
		policy = disruptor.WaitBackoff
	default:
		return fmt.Errorf("unknown wait policy %q (want spin or backoff)", w)
	}

	d := disruptor.NewExp(viper.GetInt("exponent")).
		Consumers(viper.GetInt("consumers")).
		WaitPolicy(policy).
		Build()

	random := viper.GetBool("random-payload")
	duration := viper.GetDuration("duration")

	start := time.Now()

	var producerWg sync.WaitGroup
	producerWg.Add(1)
	go func() {
		defer producerWg.Done()
		p := d.Producer()
		buf := make([]byte, 0, disruptor.MaxPayload)
		for d.ProducerRunning() {
			buf = buf[:0]
			if random {
				n := int(1 + fastrand.Uint32n(disruptor.MaxPayload))
				buf = buf[:n]
			} else {
				buf = append(buf, "message "...)
				buf = strconv.AppendUint(buf, d.Produced(), 10)
			}
			if err := p.Produce(buf); err != nil {
				panic(err)
			}
		}
	}()

	var consumerWg sync.WaitGroup
	for i := 0; i < d.NumConsumers(); i++ {
		consumerWg.Add(1)
		go func(i int) {
			defer consumerWg.Done()
			d.Consumer(i).Run(nil)
		}(i)
	}

	time.Sleep(duration)
	d.StopProducer()
	producerWg.Wait()
	d.StopConsumers()
	consumerWg.Wait()

	elapsed := time.Since(start)
	produced := d.Produced()
	fmt.Printf("%d produced\n", produced)
	for i := 0; i < d.NumConsumers(); i++ {
		fmt.Printf("%d consumed by consumer %d\n", d.Consumed(i), i)
	}
	fmt.Printf("time spent: %.3f secs (%.1f msg/sec)\n",
		elapsed.Seconds(), float64(produced)/elapsed.Seconds())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
